package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/utils"
)

type RentalController struct {
	DB *gorm.DB
}

type CreateRentalRequest struct {
	PostID    uint   `json:"postId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"` // "2006-01-02"
	EndDate   string `json:"endDate" binding:"required"`
	Message   string `json:"message"`
}

func NewRentalController(db *gorm.DB) *RentalController {
	return &RentalController{DB: db}
}

// CreateRentalRequest godoc
// @Summary Request to rent an item
// @Description Creates a pending rental request for a rentable post
// @Tags rentals
// @Accept json
// @Produce json
// @Param rental body CreateRentalRequest true "Rental request"
// @Success 201 {object} models.RentalRequest
// @Router /rentals [post]
func (rc *RentalController) CreateRentalRequest(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be in YYYY-MM-DD format"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be in YYYY-MM-DD format"})
		return
	}
	if !endDate.After(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be after startDate"})
		return
	}

	var post models.Post
	if err := rc.DB.First(&post, req.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.IsRentable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This item is not available for rent"})
		return
	}
	if post.UserID == user.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot rent your own item"})
		return
	}

	// One open request per renter and item at a time.
	var open int64
	rc.DB.Model(&models.RentalRequest{}).
		Where("post_id = ? AND renter_id = ? AND status IN ?", post.ID, user.UserID,
			[]string{models.RentalStatusPending, models.RentalStatusAccepted}).
		Count(&open)
	if open > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an open request for this item"})
		return
	}

	days := int64(endDate.Sub(startDate).Hours() / 24)
	totalPrice := post.RentPerDay.Mul(decimal.NewFromInt(days))

	rental := models.RentalRequest{
		PostID:     post.ID,
		OwnerID:    post.UserID,
		RenterID:   user.UserID,
		StartDate:  startDate,
		EndDate:    endDate,
		Message:    req.Message,
		Status:     models.RentalStatusPending,
		TotalPrice: totalPrice,
		CreatedAt:  time.Now(),
	}

	tx := rc.DB.Begin()

	if err := tx.Create(&rental).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rental request"})
		return
	}

	activity := models.ActivityLog{
		UserID:    user.UserID,
		PostID:    post.ID,
		Activity:  "rental_requested",
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

	c.JSON(http.StatusCreated, rental)
}

// UpdateRentalStatus godoc
// @Summary Accept, decline, cancel or complete a rental request
// @Description Owner may accept/decline/complete, renter may cancel. Transitions: pending->accepted|declined|cancelled, accepted->completed|cancelled.
// @Tags rentals
// @Accept json
// @Produce json
// @Param id path string true "Rental request ID"
// @Success 200 {object} models.RentalRequest
// @Router /rentals/{id}/status [put]
func (rc *RentalController) UpdateRentalStatus(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	rentalID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required,oneof=accepted declined cancelled completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rental models.RentalRequest
	if err := rc.DB.First(&rental, rentalID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rental request not found"})
		return
	}

	if !rentalTransitionAllowed(rental.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
			"from":  rental.Status,
			"to":    input.Status,
		})
		return
	}

	switch input.Status {
	case models.RentalStatusAccepted, models.RentalStatusDeclined, models.RentalStatusCompleted:
		if rental.OwnerID != user.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the item owner can do this"})
			return
		}
	case models.RentalStatusCancelled:
		if rental.RenterID != user.UserID && rental.OwnerID != user.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only a participant can cancel"})
			return
		}
	}

	tx := rc.DB.Begin()

	if err := tx.Model(&rental).Updates(map[string]interface{}{
		"status":     input.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rental request"})
		return
	}

	activity := models.ActivityLog{
		UserID:    user.UserID,
		PostID:    rental.PostID,
		Activity:  "rental_" + input.Status,
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

	rental.Status = input.Status
	c.JSON(http.StatusOK, rental)
}

func rentalTransitionAllowed(from, to string) bool {
	switch from {
	case models.RentalStatusPending:
		return to == models.RentalStatusAccepted ||
			to == models.RentalStatusDeclined ||
			to == models.RentalStatusCancelled
	case models.RentalStatusAccepted:
		return to == models.RentalStatusCompleted ||
			to == models.RentalStatusCancelled
	default:
		// declined, cancelled and completed are terminal
		return false
	}
}

// GetIncomingRentals godoc
// @Summary List rental requests for the caller's items
// @Tags rentals
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /rentals/incoming [get]
func (rc *RentalController) GetIncomingRentals(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	rc.listRentals(c, "owner_id", user.UserID)
}

// GetOutgoingRentals godoc
// @Summary List the caller's own rental requests
// @Tags rentals
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /rentals/outgoing [get]
func (rc *RentalController) GetOutgoingRentals(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	rc.listRentals(c, "renter_id", user.UserID)
}

func (rc *RentalController) listRentals(c *gin.Context, column string, userID uint) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	status := c.Query("status")

	offset := (page - 1) * pageSize

	query := rc.DB.Model(&models.RentalRequest{}).Where(column+" = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var rentals []models.RentalRequest
	result := query.
		Preload("Post").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&rentals)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching rental requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rentals": rentals,
		"pagination": gin.H{
			"currentPage": page,
			"pageSize":    pageSize,
			"totalItems":  total,
			"totalPages":  math.Ceil(float64(total) / float64(pageSize)),
		},
	})
}
