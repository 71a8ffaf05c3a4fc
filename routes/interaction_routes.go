package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rewear/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/like", interactionController.LikePost)
		posts.POST("/:id/report", interactionController.ReportPost)
		posts.POST("/:id/comments", commentController.CreateComment)
		posts.GET("/:id/comments", commentController.GetPostComments)
	}

	comments := protected.Group("/comments")
	{
		comments.DELETE("/:id", commentController.DeleteComment)
	}

	users := protected.Group("/users")
	{
		users.POST("/:id/follow", interactionController.FollowUser)
		users.GET("/:id/followers", interactionController.GetUserFollowers)
		users.GET("/:id/following", interactionController.GetUserFollowing)
	}
}
