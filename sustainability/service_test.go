package sustainability_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rewear/api-go/models"
	"github.com/rewear/api-go/sustainability"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the whole test on one in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Badge{},
		&models.UserBadge{},
	))
	return db
}

func newTestService(t *testing.T) (*sustainability.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := sustainability.NewService(db)
	require.NoError(t, svc.SeedCatalog())
	return svc, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPosts(t *testing.T, db *gorm.DB, userID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("post %d", i),
			Category:  "jacket",
			Condition: "good",
			UserID:    userID,
			EcoPoints: 50,
		}
		require.NoError(t, db.Create(post).Error)
	}
}

func mustContribution(t *testing.T, ecoPoints int, waterSaved, carbonReduced string) sustainability.Contribution {
	t.Helper()
	ep := ecoPoints
	c, err := sustainability.ParseContribution(&ep, waterSaved, carbonReduced)
	require.NoError(t, err)
	return c
}

func badgeNames(badges []models.Badge) []string {
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	return names
}

func TestApplyContributionAccumulates(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "alice")

	contributions := []sustainability.Contribution{
		mustContribution(t, 50, "2.5", "1.2"),
		mustContribution(t, 30, "4.0", "0.8"),
		mustContribution(t, 0, "1.5", "2.0"),
	}
	for _, c := range contributions {
		require.NoError(t, svc.ApplyContribution(user.ID, c))
	}

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)

	assert.Equal(t, int64(80), got.EcoPoints)
	assert.Equal(t, int64(3), got.ItemsReused)
	assert.True(t, got.WaterSaved.Equal(decimal.RequireFromString("8.0")),
		"expected water saved 8.0, got %s", got.WaterSaved)
	assert.True(t, got.CarbonReduced.Equal(decimal.RequireFromString("4.0")),
		"expected carbon reduced 4.0, got %s", got.CarbonReduced)
}

func TestApplyContributionMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ApplyContribution(9999, mustContribution(t, 50, "2.5", "1.2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sustainability.ErrUserNotFound)
}

func TestFirstPostScenario(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "bob")
	createTestPosts(t, db, user.ID, 1)

	earned, err := svc.RecordPostContribution(user.ID, mustContribution(t, 50, "2.5", "1.2"))
	require.NoError(t, err)
	assert.Empty(t, earned, "no thresholds met after the first post")

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, int64(50), got.EcoPoints)
	assert.Equal(t, int64(1), got.ItemsReused)
	assert.True(t, got.WaterSaved.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, got.CarbonReduced.Equal(decimal.RequireFromString("1.20")))
}

func TestGreenIconAwardedExactlyOnce(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "carol")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("eco_points", 960).Error)

	createTestPosts(t, db, user.ID, 1)
	earned, err := svc.RecordPostContribution(user.ID, mustContribution(t, 50, "2.5", "1.2"))
	require.NoError(t, err)
	assert.Contains(t, badgeNames(earned), "Green Icon")

	// An identical second post must not re-award it.
	createTestPosts(t, db, user.ID, 1)
	earned, err = svc.RecordPostContribution(user.ID, mustContribution(t, 50, "2.5", "1.2"))
	require.NoError(t, err)
	assert.NotContains(t, badgeNames(earned), "Green Icon")

	var count int64
	require.NoError(t, db.Model(&models.UserBadge{}).
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ? AND badges.name = ?", user.ID, "Green Icon").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEvaluateBadgesIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "dave")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("eco_points", 1500).Error)

	earned, err := svc.EvaluateBadges(user.ID)
	require.NoError(t, err)
	require.Contains(t, badgeNames(earned), "Green Icon")

	// No state change in between: the second run awards nothing.
	earned, err = svc.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestPostsCountThresholdBoundary(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "erin")

	createTestPosts(t, db, user.ID, 49)
	earned, err := svc.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.NotContains(t, badgeNames(earned), "Fashion Saver", "49 posts must not qualify")

	createTestPosts(t, db, user.ID, 1)
	earned, err = svc.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeNames(earned), "Fashion Saver", "exactly 50 posts qualifies")
}

func TestLikesAverageNeverDividesByZero(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "frank")

	// Zero posts: the likes-average predicate is explicitly false.
	earned, err := svc.EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.NotContains(t, badgeNames(earned), "Trendsetter")
}

func TestLikesAverageThreshold(t *testing.T) {
	svc, db := newTestService(t)
	owner := createTestUser(t, db, "grace")
	createTestPosts(t, db, owner.ID, 1)

	var post models.Post
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&post).Error)

	for i := 0; i < 100; i++ {
		fan := createTestUser(t, db, fmt.Sprintf("fan%d", i))
		require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: fan.ID}).Error)
	}

	earned, err := svc.EvaluateBadges(owner.ID)
	require.NoError(t, err)
	assert.Contains(t, badgeNames(earned), "Trendsetter")
}

func TestEvaluateBadgesMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EvaluateBadges(9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, sustainability.ErrUserNotFound)
}

func TestConcurrentContributionsSameUser(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "heidi")

	const workers = 10
	contribution := mustContribution(t, 50, "2.5", "1.2")

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPostContribution(user.ID, contribution)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, int64(workers*50), got.EcoPoints, "no contribution may be lost")
	assert.Equal(t, int64(workers), got.ItemsReused)
	assert.True(t, got.WaterSaved.Equal(decimal.RequireFromString("25.0")))
}
