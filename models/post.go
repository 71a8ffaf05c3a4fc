package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Post struct {
	gorm.Model
	Title       string          `json:"title" gorm:"not null;type:varchar(120)"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"not null;type:varchar(50)"` // "dress", "jacket", "shoes", ...
	Brand       string          `json:"brand" gorm:"type:varchar(80)"`
	Size        string          `json:"size" gorm:"type:varchar(20)"`
	Condition   string          `json:"condition" gorm:"not null;type:varchar(20)"` // "like_new", "good", "worn"
	Tags        pq.StringArray  `json:"tags" gorm:"type:text[]"`
	UserID      uint            `json:"userId" gorm:"not null;index"`
	User        User            `json:"user" gorm:"foreignKey:UserID"`
	IsPublic    bool            `json:"isPublic" gorm:"default:true"`
	IsRentable  bool            `json:"isRentable" gorm:"default:false"`
	RentPerDay  decimal.Decimal `json:"rentPerDay" gorm:"type:decimal(10,2);default:0"`

	// Per-post sustainability contribution, fixed at creation time. These are
	// immutable inputs to the user's ledger; edits and deletions do not flow
	// back into the totals.
	EcoPoints     int             `json:"ecoPoints" gorm:"not null;default:0"`
	WaterSaved    decimal.Decimal `json:"waterSaved" gorm:"type:decimal(10,2);default:0"`
	CarbonReduced decimal.Decimal `json:"carbonReduced" gorm:"type:decimal(10,2);default:0"`

	Media     []PostMedia `json:"media" gorm:"foreignKey:PostID"`
	Comments  []Comment   `json:"comments" gorm:"foreignKey:PostID"`
	Likes     []Like      `json:"likes" gorm:"foreignKey:PostID"`
	ViewCount int         `json:"viewCount" gorm:"default:0"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
