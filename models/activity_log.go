package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityLog struct {
	gorm.Model
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `json:"userId" gorm:"not null"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	PostID    uint      `json:"postId"`
	Post      Post      `json:"post" gorm:"foreignKey:PostID"`
	Activity  string    `json:"activity" gorm:"not null;type:varchar(50)"` // "post_created", "post_liked", "rental_requested", "badge_earned", etc.
	EcoPoints int       `json:"ecoPoints" gorm:"not null;default:0"`
}
