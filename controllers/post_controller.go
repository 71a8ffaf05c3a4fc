package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/sustainability"
	"github.com/rewear/api-go/utils"
)

type PostController struct {
	DB  *gorm.DB
	Eco *sustainability.Service
}

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,max=120"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Brand       string   `json:"brand"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition" binding:"required,oneof=like_new good worn"`
	Tags        []string `json:"tags"`
	MediaURLs   []string `json:"mediaUrls" binding:"required,min=1"`
	IsPublic    *bool    `json:"isPublic"`
	IsRentable  bool     `json:"isRentable"`
	RentPerDay  string   `json:"rentPerDay"`

	// Declared sustainability contribution. Absent fields fall back to the
	// engine defaults.
	EcoPoints     *int   `json:"ecoPoints"`
	WaterSaved    string `json:"waterSaved"`
	CarbonReduced string `json:"carbonReduced"`
}

func NewPostController(db *gorm.DB, eco *sustainability.Service) *PostController {
	return &PostController{DB: db, Eco: eco}
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a secondhand fashion post, credits the owner's sustainability ledger and awards any newly unlocked badges
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} map[string]interface{}
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Contribution values are validated before anything is written, so a
	// malformed request can never partially apply.
	contribution, err := sustainability.ParseContribution(req.EcoPoints, req.WaterSaved, req.CarbonReduced)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rentPerDay := decimal.Zero
	if req.IsRentable {
		if req.RentPerDay == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rentPerDay is required for rentable posts"})
			return
		}
		rentPerDay, err = decimal.NewFromString(req.RentPerDay)
		if err != nil || rentPerDay.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rentPerDay must be a non-negative number"})
			return
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	tx := pc.DB.Begin()

	post := models.Post{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		Size:          req.Size,
		Condition:     req.Condition,
		Tags:          pq.StringArray(req.Tags),
		UserID:        user.UserID,
		IsPublic:      isPublic,
		IsRentable:    req.IsRentable,
		RentPerDay:    rentPerDay,
		EcoPoints:     contribution.EcoPoints,
		WaterSaved:    contribution.WaterSaved,
		CarbonReduced: contribution.CarbonReduced,
		CreatedAt:     time.Now(),
	}

	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	for i, mediaURL := range req.MediaURLs {
		media := models.PostMedia{
			PostID:     post.ID,
			MediaURL:   mediaURL,
			OrderIndex: i,
		}
		if err := tx.Create(&media).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach post media"})
			return
		}
	}

	activity := models.ActivityLog{
		UserID:    user.UserID,
		PostID:    post.ID,
		Activity:  "post_created",
		EcoPoints: contribution.EcoPoints,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	// The post is durable from here on. A ledger or badge failure surfaces
	// as a failed call but does not roll the post back.
	earned, err := pc.Eco.RecordPostContribution(user.UserID, contribution)
	if err != nil {
		if errors.Is(err, sustainability.ErrUserNotFound) {
			log.Printf("post %d created but owner %d missing, ledger skipped", post.ID, user.UserID)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Post created but sustainability update failed",
			"postId": post.ID,
		})
		return
	}

	for _, badge := range earned {
		pc.DB.Create(&models.ActivityLog{
			UserID:    user.UserID,
			PostID:    post.ID,
			Activity:  "badge_earned",
			CreatedAt: time.Now(),
		})
		log.Printf("user %d earned badge %q", user.UserID, badge.Name)
	}

	var created models.Post
	pc.DB.Preload("Media").First(&created, post.ID)

	c.JSON(http.StatusCreated, gin.H{
		"post":         created,
		"pointsEarned": contribution.EcoPoints,
		"newBadges":    earned,
	})
}

// GetPostDetail godoc
// @Summary Get a single post
// @Description Returns a post with its media, owner and interaction counts
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.Preload("Media").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var owner struct {
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	pc.DB.Model(&models.User{}).Select("username, avatar").Where("id = ?", post.UserID).Scan(&owner)

	var likesCount, commentsCount int64
	pc.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likesCount)
	pc.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentsCount)

	pc.DB.Model(&post).UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))

	c.JSON(http.StatusOK, gin.H{
		"post":          post,
		"username":      owner.Username,
		"avatar":        owner.Avatar,
		"likesCount":    likesCount,
		"commentsCount": commentsCount,
	})
}

// GetUserPosts godoc
// @Summary Get posts by user
// @Description Returns paginated list of posts by a specific user
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	userID := c.Param("id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	offset := (page - 1) * pageSize

	var posts []struct {
		models.Post
		Username      string `json:"username"`
		LikesCount    int64  `json:"likesCount"`
		CommentsCount int64  `json:"commentsCount"`
	}

	var total int64
	pc.DB.Model(&models.Post{}).Where("user_id = ?", userID).Count(&total)

	result := pc.DB.Model(&models.Post{}).
		Select(`
			posts.*,
			users.username,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count
		`).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes a post and related data. The owner's sustainability totals are untouched: the ledger only ever accumulates.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	var pendingRentals int64
	pc.DB.Model(&models.RentalRequest{}).
		Where("post_id = ? AND status IN ?", post.ID, []string{models.RentalStatusPending, models.RentalStatusAccepted}).
		Count(&pendingRentals)
	if pendingRentals > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Post has open rental requests"})
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete likes"})
		return
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comments"})
		return
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.PostMedia{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post media"})
		return
	}

	activity := models.ActivityLog{
		UserID:    user.UserID,
		Activity:  "post_deleted",
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity log"})
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post successfully deleted",
	})
}
