package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rewear/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		// Single photo upload URL generation
		upload.POST("/presigned-url", uploadController.GetPresignedURL)

		// Multiple photo upload URLs (for multi-photo listings)
		upload.POST("/multiple-presigned-urls", uploadController.GetMultiplePresignedURLs)

		// Confirm upload completion
		upload.POST("/confirm", uploadController.ConfirmUpload)

		// Delete uploaded file
		upload.DELETE("/file/:key", uploadController.DeleteFile)

		// Avatar upload URL
		upload.POST("/avatar", uploadController.GetAvatarUploadURL)
	}
}
