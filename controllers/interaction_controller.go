package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/utils"
)

type InteractionController struct {
	DB *gorm.DB
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{DB: db}
}

// LikePost godoc
// @Summary Like or unlike a post
// @Description Toggles like status for a post
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/like [post]
func (ic *InteractionController) LikePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existingLike models.Like
	result := ic.DB.Where("post_id = ? AND user_id = ?", postID, user.UserID).First(&existingLike)

	tx := ic.DB.Begin()

	if result.Error == gorm.ErrRecordNotFound {
		like := models.Like{
			UserID:    user.UserID,
			PostID:    post.ID,
			CreatedAt: time.Now(),
		}

		if err := tx.Create(&like).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}

		activity := models.ActivityLog{
			UserID:    user.UserID,
			PostID:    post.ID,
			Activity:  "post_liked",
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&activity).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
			return
		}

		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"liked": true})
	} else {
		if err := tx.Delete(&existingLike).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
			return
		}

		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"liked": false})
	}
}

// FollowUser godoc
// @Summary Follow or unfollow a user
// @Description Toggles follow status for a user
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID to follow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	targetUserID := c.Param("id")

	var targetUser models.User
	if err := ic.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == targetUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var existingFollow models.Follow
	result := ic.DB.Where("follower_user_id = ? AND following_user_id = ?", user.UserID, targetUser.ID).First(&existingFollow)

	if result.Error == gorm.ErrRecordNotFound {
		follow := models.Follow{
			FollowerUserID:  user.UserID,
			FollowingUserID: targetUser.ID,
			Status:          "accepted",
		}

		if err := ic.DB.Create(&follow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"following": true,
			"message":   "Successfully followed user",
		})
	} else {
		if err := ic.DB.Delete(&existingFollow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"following": false,
			"message":   "Successfully unfollowed user",
		})
	}
}

// GetUserFollowers godoc
// @Summary Get user's followers
// @Description Returns paginated list of user's followers
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/followers [get]
func (ic *InteractionController) GetUserFollowers(c *gin.Context) {
	userID := c.Param("id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var followers []struct {
		UserID    uint      `json:"userId"`
		Username  string    `json:"username"`
		Avatar    string    `json:"avatar"`
		CreatedAt time.Time `json:"followedAt"`
	}

	var total int64
	ic.DB.Model(&models.Follow{}).Where("following_user_id = ?", userID).Count(&total)

	result := ic.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, users.avatar, follows.created_at").
		Joins("JOIN users ON follows.follower_user_id = users.id").
		Where("follows.following_user_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&followers)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}

// GetUserFollowing godoc
// @Summary Get users a user follows
// @Description Returns paginated list of users the given user follows
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/following [get]
func (ic *InteractionController) GetUserFollowing(c *gin.Context) {
	userID := c.Param("id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var following []struct {
		UserID    uint      `json:"userId"`
		Username  string    `json:"username"`
		Avatar    string    `json:"avatar"`
		CreatedAt time.Time `json:"followedAt"`
	}

	var total int64
	ic.DB.Model(&models.Follow{}).Where("follower_user_id = ?", userID).Count(&total)

	result := ic.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, users.avatar, follows.created_at").
		Joins("JOIN users ON follows.following_user_id = users.id").
		Where("follows.follower_user_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&following)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": following,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}

// ReportPost godoc
// @Summary Report a post
// @Description Flags a post for moderation (counterfeit, not secondhand, spam, ...)
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 201 {object} map[string]interface{}
// @Router /posts/{id}/report [post]
func (ic *InteractionController) ReportPost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	var input struct {
		Reason      string `json:"reason" binding:"required,oneof=counterfeit not_secondhand inappropriate spam"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	report := models.Report{
		ReporterUserID: user.UserID,
		PostID:         post.ID,
		Reason:         input.Reason,
		Description:    input.Description,
		Status:         "pending",
	}
	if err := ic.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted", "reportId": report.ID})
}
