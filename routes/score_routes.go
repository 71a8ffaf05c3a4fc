package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rewear/api-go/controllers"
)

func SetupScoreRoutes(protected *gin.RouterGroup, scoreController *controllers.ScoreController, leaderboardController *controllers.LeaderboardController) {
	users := protected.Group("/users")
	{
		users.GET("/:id/score", scoreController.GetUserScore)
		users.GET("/:id/badges", scoreController.GetUserBadges)
	}

	eco := protected.Group("/eco")
	{
		eco.GET("/estimate", scoreController.GetContributionEstimate)
		eco.GET("/leaderboard", leaderboardController.GetLeaderboard)
	}
}
