package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rental request lifecycle:
// pending -> accepted | declined | cancelled
// accepted -> completed | cancelled
const (
	RentalStatusPending   = "pending"
	RentalStatusAccepted  = "accepted"
	RentalStatusDeclined  = "declined"
	RentalStatusCancelled = "cancelled"
	RentalStatusCompleted = "completed"
)

type RentalRequest struct {
	gorm.Model
	PostID     uint            `json:"postId" gorm:"not null;index"`
	Post       Post            `json:"post" gorm:"foreignKey:PostID"`
	OwnerID    uint            `json:"ownerId" gorm:"not null;index"`
	Owner      User            `json:"owner" gorm:"foreignKey:OwnerID"`
	RenterID   uint            `json:"renterId" gorm:"not null;index"`
	Renter     User            `json:"renter" gorm:"foreignKey:RenterID"`
	StartDate  time.Time       `json:"startDate" gorm:"not null"`
	EndDate    time.Time       `json:"endDate" gorm:"not null"`
	Message    string          `json:"message" gorm:"type:text"`
	Status     string          `json:"status" gorm:"not null;default:'pending';type:varchar(20)"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);default:0"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
