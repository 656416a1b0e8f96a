package models

import (
	"time"

	"gorm.io/gorm"
)

// Company groups users under a shared seat pool for team licenses.
type Company struct {
	gorm.Model
	Name         string `gorm:"not null"`
	BillingEmail string `gorm:"default:''"`
	TaxNumber    string `gorm:"default:''"`
	SeatLimit    int    `gorm:"default:0"`
	SeatsUsed    int    `gorm:"default:0"`
	OwnerUserID  uint   `gorm:"index"`
	IsDeleted    bool   `gorm:"default:false"`
}

// CompanyInvite is a pending seat assignment, redeemed by token.
type CompanyInvite struct {
	gorm.Model
	CompanyID  uint   `gorm:"index;not null"`
	Email      string `gorm:"index;not null"`
	Token      string `gorm:"uniqueIndex;not null"`
	AcceptedAt *time.Time
	IsDeleted  bool `gorm:"default:false"`
}
