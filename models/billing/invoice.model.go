package billing

import (
	"time"

	"gorm.io/gorm"
)

// Invoice mirrors a payment-gateway invoice locally. DownloadURL and the
// settled state are enriched from the gateway on read; the local row is the
// availability fallback when the gateway is unreachable.
type Invoice struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	SubscriptionID   *uint  `json:"subscription_id" gorm:"index"`
	GatewayInvoiceID string `json:"gateway_invoice_id" gorm:"uniqueIndex;not null"`
	AmountHUF        int64  `json:"amount_huf" gorm:"default:0"`
	Currency         string `json:"currency" gorm:"default:'HUF'"`
	Status           string `json:"status" gorm:"default:'PENDING'"` // PENDING, PAID, FAILED
	DownloadURL      string `json:"download_url" gorm:"default:''"`
	IssuedAt         *time.Time
	PaidAt           *time.Time
	IsDeleted        bool `gorm:"default:false"`
}
