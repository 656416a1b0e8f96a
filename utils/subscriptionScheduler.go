package utils

import (
	"time"

	"dma/models"
	billingModels "dma/models/billing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitializeSubscriptionScheduler starts the daily subscription sweep:
// reminders for plans expiring within three days, then expiry of lapsed
// ones. Returns the cron so main can stop it on shutdown.
func InitializeSubscriptionScheduler(db *gorm.DB, log *zap.SugaredLogger) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		log.Infow("subscription sweep started")
		ProcessExpiringSubscriptions(db, log)
		ExpireSubscriptions(db, log)
	})

	c.Start()
	log.Infow("subscription scheduler started", "schedule", "daily 09:00")
	return c
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions
// expiring within three days that have not been reminded yet.
func ProcessExpiringSubscriptions(db *gorm.DB, log *zap.SugaredLogger) {
	now := time.Now()
	threeDaysFromNow := now.AddDate(0, 0, 3)

	var expiring []billingModels.Subscription
	if err := db.
		Where("status = ? AND reminder_sent = ? AND is_deleted = ? AND expires_at IS NOT NULL", billingModels.SubscriptionActive, false, false).
		Where("expires_at BETWEEN ? AND ?", now, threeDaysFromNow).
		Find(&expiring).Error; err != nil {
		log.Errorw("failed to fetch expiring subscriptions", "error", err)
		return
	}

	log.Infow("expiring subscriptions found", "count", len(expiring))

	for _, sub := range expiring {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Warnw("failed to fetch subscription owner", "subscriptionId", sub.ID, "error", err)
			continue
		}

		if err := SendSubscriptionExpiryReminder(user.Email, user.Name, sub.ExpiresAt); err != nil {
			log.Warnw("failed to send expiry reminder", "subscriptionId", sub.ID, "error", err)
			continue
		}

		db.Model(&sub).Update("reminder_sent", true)
		log.Infow("expiry reminder sent", "subscriptionId", sub.ID, "email", user.Email)
	}
}

// ExpireSubscriptions marks lapsed subscriptions EXPIRED and notifies
// their owners.
func ExpireSubscriptions(db *gorm.DB, log *zap.SugaredLogger) {
	now := time.Now()

	result := db.Model(&billingModels.Subscription{}).
		Where("status = ? AND is_deleted = ? AND expires_at IS NOT NULL AND expires_at < ?", billingModels.SubscriptionActive, false, now).
		Update("status", billingModels.SubscriptionExpired)
	if result.Error != nil {
		log.Errorw("failed to expire subscriptions", "error", result.Error)
		return
	}

	if result.RowsAffected == 0 {
		return
	}
	log.Infow("subscriptions expired", "count", result.RowsAffected)

	// Only notify the rows flipped in this run
	var expired []billingModels.Subscription
	db.Where("status = ? AND is_deleted = ? AND expires_at < ?", billingModels.SubscriptionExpired, false, now).
		Where("updated_at > ?", now.Add(-time.Hour)).
		Find(&expired)

	for _, sub := range expired {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			continue
		}
		if err := SendSubscriptionExpiredEmail(user.Email, user.Name); err != nil {
			log.Warnw("failed to send expiry notification", "subscriptionId", sub.ID, "error", err)
		}
	}
}
