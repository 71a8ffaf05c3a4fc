package models

import (
	"time"

	"gorm.io/gorm"
)

// Requirement identifies the rule that unlocks a badge. The set is closed;
// the sustainability service maps each value to a predicate function.
type Requirement string

const (
	RequirementPostsCount50     Requirement = "posts_count_50"
	RequirementPostsCount100    Requirement = "posts_count_100"
	RequirementEcoPoints1000    Requirement = "eco_points_1000"
	RequirementWaterSaved200    Requirement = "water_saved_200"
	RequirementCarbonReduced100 Requirement = "carbon_reduced_100"
	RequirementLikesAverage100  Requirement = "likes_average_100"
)

// Badge is a catalog entry, not user-specific. The catalog is seeded once and
// never mutated afterwards.
type Badge struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Name        string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"size:50" json:"icon"`
	Requirement Requirement    `gorm:"not null;type:varchar(50)" json:"requirement"`
}

// UserBadge records that a user earned a badge. At most one row per
// (user, badge) pair, enforced by the unique index.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}
