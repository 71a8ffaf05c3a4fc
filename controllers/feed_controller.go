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

type FeedController struct {
	DB *gorm.DB
}

type FeedQuery struct {
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=20" binding:"min=1,max=50"`
	SortBy      string `form:"sortBy" binding:"omitempty,oneof=newest popular"`
	TimeFrame   string `form:"timeFrame" binding:"omitempty,oneof=today this_week this_month all_time"`
	Category    string `form:"category"`
	Condition   string `form:"condition" binding:"omitempty,oneof=like_new good worn"`
	OnlyRentals bool   `form:"onlyRentals"`
	OnlyFriends bool   `form:"onlyFriends"`
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// GetUserFeed godoc
// @Summary Get user's personalized feed
// @Description Returns public posts, optionally restricted to followed users, with category/condition/rental filters
// @Tags feed
// @Accept json
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20, max: 50)"
// @Param sortBy query string false "Sort by: newest, popular"
// @Param timeFrame query string false "Time frame: today, this_week, this_month, all_time"
// @Param category query string false "Filter by garment category"
// @Param condition query string false "Filter by condition"
// @Param onlyRentals query boolean false "Show only rentable items"
// @Param onlyFriends query boolean false "Show only followed users' posts"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetUserFeed(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := fc.DB.Model(&models.Post{}).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.is_public = ?", true)

	if query.OnlyFriends {
		db = db.Joins("JOIN follows ON posts.user_id = follows.following_user_id").
			Where("follows.follower_user_id = ?", user.UserID)
	}

	if query.Category != "" {
		db = db.Where("posts.category = ?", query.Category)
	}
	if query.Condition != "" {
		db = db.Where("posts.condition = ?", query.Condition)
	}
	if query.OnlyRentals {
		db = db.Where("posts.is_rentable = ?", true)
	}

	switch query.TimeFrame {
	case "today":
		db = db.Where("posts.created_at >= ?", time.Now().Truncate(24*time.Hour))
	case "this_week":
		db = db.Where("posts.created_at >= ?", time.Now().AddDate(0, 0, -7))
	case "this_month":
		db = db.Where("posts.created_at >= ?", time.Now().AddDate(0, -1, 0))
	}

	switch query.SortBy {
	case "popular":
		db = db.Order("(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) DESC")
	default:
		db = db.Order("posts.created_at DESC")
	}

	var total int64
	db.Count(&total)

	offset := (query.Page - 1) * query.PageSize

	var posts []struct {
		models.Post
		Username      string `json:"username"`
		Avatar        string `json:"avatar"`
		LikesCount    int64  `json:"likesCount"`
		CommentsCount int64  `json:"commentsCount"`
	}

	result := db.
		Select(`
			posts.*,
			users.username,
			users.avatar,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
		`).
		Offset(offset).
		Limit(query.PageSize).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": gin.H{
			"currentPage": query.Page,
			"pageSize":    query.PageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(query.PageSize)),
		},
	})
}
