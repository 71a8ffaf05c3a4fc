package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/types"
)

// ScoreController serves read-only projections of a user's sustainability
// totals and earned badges. It performs no computation beyond formatting.
type ScoreController struct {
	DB *gorm.DB
}

func NewScoreController(db *gorm.DB) *ScoreController {
	return &ScoreController{DB: db}
}

// GetUserScore godoc
// @Summary Get a user's sustainability totals
// @Tags score
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/score [get]
func (sc *ScoreController) GetUserScore(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var postCount int64
	sc.DB.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)

	c.JSON(http.StatusOK, gin.H{
		"userId":        user.ID,
		"username":      user.Username,
		"ecoPoints":     user.EcoPoints,
		"waterSaved":    user.WaterSaved.StringFixed(2),
		"carbonReduced": user.CarbonReduced.StringFixed(2),
		"itemsReused":   user.ItemsReused,
		"postCount":     postCount,
	})
}

// GetUserBadges godoc
// @Summary Get a user's earned badges
// @Tags score
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/badges [get]
func (sc *ScoreController) GetUserBadges(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var earned []struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Icon        string    `json:"icon"`
		EarnedAt    time.Time `json:"earnedAt"`
	}

	result := sc.DB.Model(&models.UserBadge{}).
		Select("badges.name, badges.description, badges.icon, user_badges.earned_at").
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ?", user.ID).
		Order("user_badges.earned_at ASC").
		Find(&earned)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": user.ID,
		"badges": earned,
	})
}

// GetContributionEstimate godoc
// @Summary Estimate the sustainability contribution of a garment
// @Description Returns the eco-points, water and carbon estimates for a category/condition pair, used to prefill the post form
// @Tags score
// @Accept json
// @Produce json
// @Param category query string true "Garment category"
// @Param condition query string false "Garment condition (default: good)"
// @Success 200 {object} map[string]interface{}
// @Router /eco/estimate [get]
func (sc *ScoreController) GetContributionEstimate(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	condition := c.DefaultQuery("condition", "good")

	points, water, carbon := types.CalculateEcoContribution(category, condition)

	c.JSON(http.StatusOK, gin.H{
		"category":      category,
		"condition":     condition,
		"ecoPoints":     points,
		"waterSaved":    water.StringFixed(2),
		"carbonReduced": carbon.StringFixed(2),
	})
}
