package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Gender        string         `json:"gender"`
	Birthday      *time.Time     `json:"birthday"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Phone         *string        `gorm:"unique" json:"phone"`
	Password      *string        `json:"-"` // Don't expose password in JSON
	GoogleID      *string        `gorm:"unique" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"provider"` // "email" or "google"
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Posts         []Post         `json:"posts" gorm:"foreignKey:UserID"`
	Comments      []Comment      `json:"comments" gorm:"foreignKey:UserID"`
	Likes         []Like         `json:"likes" gorm:"foreignKey:UserID"`
	Followers     []User         `json:"followers" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowingUserID;References:ID;joinReferences:FollowerUserID"`
	Following     []User         `json:"following" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowerUserID;References:ID;joinReferences:FollowingUserID"`
	Badges        []UserBadge    `json:"badges" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"refresh_tokens" gorm:"foreignKey:UserID"`
	AccountStatus string         `json:"account_status"`
	IsVerified    bool           `json:"is_verified"`
	EmailVerified bool           `json:"email_verified"`

	// Sustainability ledger totals. Written exclusively by the sustainability
	// service, never decremented.
	EcoPoints     int64           `gorm:"default:0" json:"eco_points"`
	WaterSaved    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"water_saved"`
	CarbonReduced decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"carbon_reduced"`
	ItemsReused   int64           `gorm:"default:0" json:"items_reused"`
}
