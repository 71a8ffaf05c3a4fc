package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/utils"
)

type LeaderboardController struct {
	DB *gorm.DB
}

type LeaderboardQuery struct {
	TimeFilter string `form:"timeFilter" binding:"omitempty,oneof=all_time weekly monthly"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

type leaderboardEntry struct {
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	EcoPoints int64  `json:"ecoPoints"`
	Rank      int64  `json:"rank"`
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

// GetLeaderboard godoc
// @Summary Eco-points leaderboard
// @Description Ranks users by eco-points, all-time or over a recent window
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param timeFilter query string false "all_time, weekly or monthly"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 10, max: 50)"
// @Success 200 {object} map[string]interface{}
// @Router /eco/leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if query.TimeFilter == "" {
		query.TimeFilter = "all_time"
	}

	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	base := lc.DB.Model(&models.User{})
	selectClause := "users.id as user_id, users.username, users.first_name, users.last_name, users.avatar"

	switch query.TimeFilter {
	case "weekly":
		startOfWeek := time.Now().AddDate(0, 0, -int(time.Now().Weekday()))
		startOfWeek = time.Date(startOfWeek.Year(), startOfWeek.Month(), startOfWeek.Day(), 0, 0, 0, 0, time.Local)

		base = base.
			Joins("LEFT JOIN posts ON users.id = posts.user_id AND posts.created_at >= ? AND posts.deleted_at IS NULL", startOfWeek).
			Select(selectClause + ", COALESCE(SUM(posts.eco_points), 0) as eco_points").
			Group("users.id").
			Order("eco_points DESC")

	case "monthly":
		startOfMonth := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)

		base = base.
			Joins("LEFT JOIN posts ON users.id = posts.user_id AND posts.created_at >= ? AND posts.deleted_at IS NULL", startOfMonth).
			Select(selectClause + ", COALESCE(SUM(posts.eco_points), 0) as eco_points").
			Group("users.id").
			Order("eco_points DESC")

	default: // all_time
		base = base.
			Select(selectClause + ", users.eco_points").
			Order("users.eco_points DESC")
	}

	offset := (query.Page - 1) * query.PageSize

	var entries []leaderboardEntry
	if err := base.Offset(offset).Limit(query.PageSize).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	for i := range entries {
		entries[i].Rank = int64(offset + i + 1)
	}

	var total int64
	lc.DB.Model(&models.User{}).Count(&total)

	// Caller's all-time rank, shown alongside whichever window is requested.
	var callerRank int64
	lc.DB.Model(&models.User{}).
		Where("eco_points > (SELECT eco_points FROM users WHERE id = ?)", user.UserID).
		Count(&callerRank)

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"timeFilter":  query.TimeFilter,
		"currentUser": gin.H{
			"userId":      user.UserID,
			"allTimeRank": callerRank + 1,
		},
		"pagination": gin.H{
			"currentPage": query.Page,
			"pageSize":    query.PageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(query.PageSize)),
		},
	})
}
