package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/utils"
)

func newControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.RentalRequest{},
		&models.ActivityLog{},
	))
	return db
}

// newRentalRouter mounts the rental handlers behind a middleware that takes
// the authenticated user from the X-Test-User header.
func newRentalRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rc := NewRentalController(db)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := strconv.Atoi(c.GetHeader("X-Test-User")); err == nil {
			c.Set(string(utils.UserContextKey), &utils.UserClaims{
				UserID:   uint(id),
				Username: fmt.Sprintf("user%d", id),
			})
		}
		c.Next()
	})
	r.POST("/rentals", rc.CreateRentalRequest)
	r.PUT("/rentals/:id/status", rc.UpdateRentalStatus)
	r.GET("/rentals/incoming", rc.GetIncomingRentals)
	return r
}

func createRentalUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createRentablePost(t *testing.T, db *gorm.DB, ownerID uint, perDay string) models.Post {
	t.Helper()
	post := models.Post{
		Title:      "Denim jacket",
		Category:   "jacket",
		Condition:  "good",
		UserID:     ownerID,
		IsRentable: true,
		RentPerDay: decimal.RequireFromString(perDay),
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func doJSON(router *gin.Engine, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.Itoa(int(userID)))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRentalTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.RentalStatusPending, models.RentalStatusAccepted, true},
		{models.RentalStatusPending, models.RentalStatusDeclined, true},
		{models.RentalStatusPending, models.RentalStatusCancelled, true},
		{models.RentalStatusPending, models.RentalStatusCompleted, false},
		{models.RentalStatusAccepted, models.RentalStatusCompleted, true},
		{models.RentalStatusAccepted, models.RentalStatusCancelled, true},
		{models.RentalStatusAccepted, models.RentalStatusDeclined, false},
		{models.RentalStatusAccepted, models.RentalStatusPending, false},
		{models.RentalStatusDeclined, models.RentalStatusAccepted, false},
		{models.RentalStatusCancelled, models.RentalStatusAccepted, false},
		{models.RentalStatusCompleted, models.RentalStatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			assert.Equal(t, tc.want, rentalTransitionAllowed(tc.from, tc.to))
		})
	}
}

func TestCreateRentalRequestComputesTotalPrice(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	renter := createRentalUser(t, db, "renter")
	post := createRentablePost(t, db, owner.ID, "12.50")

	w := doJSON(router, http.MethodPost, "/rentals", renter.ID, gin.H{
		"postId":    post.ID,
		"startDate": "2026-09-01",
		"endDate":   "2026-09-04",
		"message":   "Need it for a wedding",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var rental models.RentalRequest
	require.NoError(t, db.First(&rental).Error)
	assert.Equal(t, models.RentalStatusPending, rental.Status)
	assert.Equal(t, owner.ID, rental.OwnerID)
	assert.Equal(t, renter.ID, rental.RenterID)
	// 3 days at 12.50 per day
	assert.True(t, rental.TotalPrice.Equal(decimal.RequireFromString("37.50")),
		"got %s", rental.TotalPrice)
}

func TestCreateRentalRequestRejectsOwnItem(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	post := createRentablePost(t, db, owner.ID, "5.00")

	w := doJSON(router, http.MethodPost, "/rentals", owner.ID, gin.H{
		"postId":    post.ID,
		"startDate": "2026-09-01",
		"endDate":   "2026-09-02",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRentalRequestRejectsNonRentableItem(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	renter := createRentalUser(t, db, "renter")
	post := models.Post{Title: "Silk scarf", Category: "accessory", Condition: "good", UserID: owner.ID}
	require.NoError(t, db.Create(&post).Error)

	w := doJSON(router, http.MethodPost, "/rentals", renter.ID, gin.H{
		"postId":    post.ID,
		"startDate": "2026-09-01",
		"endDate":   "2026-09-02",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRentalRequestRejectsDuplicateOpenRequest(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	renter := createRentalUser(t, db, "renter")
	post := createRentablePost(t, db, owner.ID, "5.00")

	body := gin.H{"postId": post.ID, "startDate": "2026-09-01", "endDate": "2026-09-02"}
	w := doJSON(router, http.MethodPost, "/rentals", renter.ID, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/rentals", renter.ID, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateRentalStatusLifecycle(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	renter := createRentalUser(t, db, "renter")
	post := createRentablePost(t, db, owner.ID, "5.00")

	w := doJSON(router, http.MethodPost, "/rentals", renter.ID, gin.H{
		"postId":    post.ID,
		"startDate": "2026-09-01",
		"endDate":   "2026-09-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var rental models.RentalRequest
	require.NoError(t, db.First(&rental).Error)
	statusPath := fmt.Sprintf("/rentals/%d/status", rental.ID)

	// Renter cannot accept
	w = doJSON(router, http.MethodPut, statusPath, renter.ID, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Pending cannot jump straight to completed
	w = doJSON(router, http.MethodPut, statusPath, owner.ID, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Owner accepts
	w = doJSON(router, http.MethodPut, statusPath, owner.ID, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	// Renter cancels the accepted rental
	w = doJSON(router, http.MethodPut, statusPath, renter.ID, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	// Cancelled is terminal
	w = doJSON(router, http.MethodPut, statusPath, owner.ID, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, db.First(&rental, rental.ID).Error)
	assert.Equal(t, models.RentalStatusCancelled, rental.Status)
}

func TestGetIncomingRentalsFiltersByStatus(t *testing.T) {
	db := newControllerTestDB(t)
	router := newRentalRouter(db)

	owner := createRentalUser(t, db, "owner")
	renterA := createRentalUser(t, db, "renter_a")
	renterB := createRentalUser(t, db, "renter_b")
	post := createRentablePost(t, db, owner.ID, "5.00")

	for _, renter := range []models.User{renterA, renterB} {
		w := doJSON(router, http.MethodPost, "/rentals", renter.ID, gin.H{
			"postId":    post.ID,
			"startDate": "2026-09-01",
			"endDate":   "2026-09-02",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var first models.RentalRequest
	require.NoError(t, db.Where("renter_id = ?", renterA.ID).First(&first).Error)
	w := doJSON(router, http.MethodPut, fmt.Sprintf("/rentals/%d/status", first.ID), owner.ID, gin.H{"status": "declined"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/rentals/incoming?status=pending", owner.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rentals []models.RentalRequest `json:"rentals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rentals, 1)
	assert.Equal(t, renterB.ID, resp.Rentals[0].RenterID)
}
