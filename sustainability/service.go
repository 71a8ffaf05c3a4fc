// Package sustainability holds the ledger accumulator and badge engine: on
// every accepted post it advances the owner's running sustainability totals
// and awards any badge whose threshold is now met.
package sustainability

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewear/api-go/models"
)

type Service struct {
	db *gorm.DB

	// Per-user locks serializing the accumulate+evaluate sequence. Two rapid
	// submissions by the same user would otherwise race on the totals row and
	// the award set.
	userLocks sync.Map // map[uint]*sync.Mutex
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) lockUser(userID uint) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// RecordPostContribution runs the full post-creation sequence for one user:
// apply the contribution to the ledger, then evaluate badges against the
// updated totals. Returns the badges newly earned by this contribution.
func (s *Service) RecordPostContribution(userID uint, c Contribution) ([]models.Badge, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := s.applyContribution(userID, c); err != nil {
		return nil, err
	}
	return s.evaluateBadges(userID)
}

// ApplyContribution adds the contribution to the user's totals and counts one
// reused item. This is the only write path for the ledger fields.
func (s *Service) ApplyContribution(userID uint, c Contribution) error {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.applyContribution(userID, c)
}

// EvaluateBadges awards every catalog badge whose predicate holds for the
// user's current state and that the user does not already hold. Running it
// again without an intervening contribution awards nothing.
func (s *Service) EvaluateBadges(userID uint) ([]models.Badge, error) {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.evaluateBadges(userID)
}

func (s *Service) applyContribution(userID uint, c Contribution) error {
	// A single UPDATE with expression increments keeps the read-modify-write
	// on the database side.
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"eco_points":     gorm.Expr("eco_points + ?", c.EcoPoints),
		"water_saved":    gorm.Expr("water_saved + ?", c.WaterSaved),
		"carbon_reduced": gorm.Expr("carbon_reduced + ?", c.CarbonReduced),
		"items_reused":   gorm.Expr("items_reused + ?", 1),
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}
	return nil
}

func (s *Service) evaluateBadges(userID uint) ([]models.Badge, error) {
	stats, err := s.loadUserStats(userID)
	if err != nil {
		return nil, err
	}

	var badges []models.Badge
	if err := s.db.Order("id").Find(&badges).Error; err != nil {
		return nil, err
	}

	var awards []models.UserBadge
	if err := s.db.Where("user_id = ?", userID).Find(&awards).Error; err != nil {
		return nil, err
	}
	held := make(map[uint]bool, len(awards))
	for _, a := range awards {
		held[a.BadgeID] = true
	}

	var earned []models.Badge
	for _, badge := range badges {
		if held[badge.ID] {
			continue
		}
		pred, ok := predicates[badge.Requirement]
		if !ok {
			log.Printf("badge %q has unknown requirement %q, skipping", badge.Name, badge.Requirement)
			continue
		}
		if !pred(stats) {
			continue
		}

		award := models.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}
		// The unique index on (user_id, badge_id) is the backstop against a
		// concurrent evaluation inserting the same award.
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&award).Error; err != nil {
			return earned, err
		}
		earned = append(earned, badge)
	}
	return earned, nil
}

func (s *Service) loadUserStats(userID uint) (UserStats, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserStats{}, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
		}
		return UserStats{}, err
	}

	var postCount int64
	if err := s.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&postCount).Error; err != nil {
		return UserStats{}, err
	}

	var likesTotal int64
	if err := s.db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = ? AND posts.deleted_at IS NULL", userID).
		Count(&likesTotal).Error; err != nil {
		return UserStats{}, err
	}

	stats := UserStats{
		EcoPoints:     user.EcoPoints,
		WaterSaved:    user.WaterSaved,
		CarbonReduced: user.CarbonReduced,
		PostCount:     postCount,
	}
	if postCount > 0 {
		stats.AverageLikes = float64(likesTotal) / float64(postCount)
	}
	return stats, nil
}
