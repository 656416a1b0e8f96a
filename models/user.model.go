package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Role                string `gorm:"default:'USER'"` // USER, COMPANY_ADMIN, ADMIN
	Password            string `gorm:"not null"`
	Locale              string `gorm:"default:'hu'"`
	CompanyID           *uint  `gorm:"index"`
	GatewayCustomerID   string `gorm:"default:''"` // customer id at the payment gateway
	IsEmailVerified     bool   `gorm:"default:false"`
	LastLogin           *time.Time
	FailedLoginAttempts int  `gorm:"default:0"`
	IsBlocked           bool `gorm:"default:false"`
	IsDeleted           bool `gorm:"default:false"`
}
