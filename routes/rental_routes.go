package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rewear/api-go/controllers"
)

func SetupRentalRoutes(protected *gin.RouterGroup, rentalController *controllers.RentalController) {
	rentals := protected.Group("/rentals")
	{
		rentals.POST("", rentalController.CreateRentalRequest)
		rentals.PUT("/:id/status", rentalController.UpdateRentalStatus)
		rentals.GET("/incoming", rentalController.GetIncomingRentals)
		rentals.GET("/outgoing", rentalController.GetOutgoingRentals)
	}
}
