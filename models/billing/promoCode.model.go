package billing

import (
	"time"

	"gorm.io/gorm"
)

// PromoCode is a percentage discount applied at subscription checkout.
type PromoCode struct {
	gorm.Model
	Code           string `json:"code" gorm:"uniqueIndex;not null"`
	PercentOff     int    `json:"percent_off" gorm:"default:0"` // 1-100
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	MaxRedemptions int  `json:"max_redemptions" gorm:"default:0"` // 0 = unlimited
	Redemptions    int  `json:"redemptions" gorm:"default:0"`
	IsActive       bool `json:"is_active" gorm:"default:true"`
	IsDeleted      bool `gorm:"default:false"`
}
