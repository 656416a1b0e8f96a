package billing

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Subscription plans
const (
	PlanMonthly = "MONTHLY"
	PlanAnnual  = "ANNUAL"
	PlanTeam    = "TEAM"
)

type Subscription struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index;not null"`
	CompanyID    *uint  `json:"company_id" gorm:"index"`
	Plan         string `json:"plan" gorm:"not null"`
	Status       string `json:"status" gorm:"default:'ACTIVE'"`
	Seats        int    `json:"seats" gorm:"default:1"`
	PriceHUF     int64  `json:"price_huf" gorm:"default:0"`
	PromoCode    string `json:"promo_code" gorm:"default:''"`
	StartsAt     *time.Time
	ExpiresAt    *time.Time
	ReminderSent bool `json:"reminder_sent" gorm:"default:false"`
	IsDeleted    bool `gorm:"default:false"`
}
