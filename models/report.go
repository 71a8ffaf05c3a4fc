package models

import (
	"time"

	"gorm.io/gorm"
)

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ReporterUserID uint   `gorm:"not null" json:"reporter_user_id"`
	PostID         uint   `gorm:"not null" json:"post_id"`
	Reason         string `gorm:"not null" json:"reason"` // "counterfeit", "not_secondhand", "inappropriate", "spam"
	Description    string `json:"description"`
	Status         string `gorm:"not null;default:'pending'" json:"status"` // pending, reviewed, resolved, dismissed

	ReporterUser User `gorm:"foreignKey:ReporterUserID" json:"reporter_user"`
	Post         Post `gorm:"foreignKey:PostID" json:"post"`
}
