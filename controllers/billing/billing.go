package billingController

import (
	"errors"
	"time"

	"dma/middleware"
	"dma/models"
	billingModels "dma/models/billing"
	"dma/payment"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Plan prices in HUF.
const (
	priceMonthlyHUF     = 4990
	priceAnnualHUF      = 49900
	priceTeamPerSeatHUF = 3990
)

type Handler struct {
	DB      *gorm.DB
	Gateway *payment.Client
	Log     *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, gateway *payment.Client, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Gateway: gateway, Log: log}
}

func (h *Handler) currentUser(c *fiber.Ctx) (models.User, bool) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return models.User{}, false
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		return models.User{}, false
	}
	return user, true
}

// promoStatus evaluates whether a promo code is redeemable at the given
// moment. Returns a user-facing reason when it is not.
func promoStatus(code billingModels.PromoCode, now time.Time) (bool, string) {
	if !code.IsActive || code.IsDeleted {
		return false, "Promo code is not active!"
	}
	if code.ValidFrom != nil && now.Before(*code.ValidFrom) {
		return false, "Promo code is not valid yet!"
	}
	if code.ValidUntil != nil && now.After(*code.ValidUntil) {
		return false, "Promo code has expired!"
	}
	if code.MaxRedemptions > 0 && code.Redemptions >= code.MaxRedemptions {
		return false, "Promo code has been fully redeemed!"
	}
	return true, ""
}

func planPrice(plan string, seats int) int64 {
	switch plan {
	case billingModels.PlanMonthly:
		return priceMonthlyHUF
	case billingModels.PlanAnnual:
		return priceAnnualHUF
	case billingModels.PlanTeam:
		if seats < 1 {
			seats = 1
		}
		return int64(seats) * priceTeamPerSeatHUF
	}
	return 0
}

func planDuration(plan string) time.Duration {
	if plan == billingModels.PlanAnnual {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// ValidatePromo checks a promo code and reports the discounted state.
func (h *Handler) ValidatePromo(c *fiber.Ctx) error {
	if _, ok := h.currentUser(c); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedPromo").(*struct {
		Code string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var code billingModels.PromoCode
	if err := h.DB.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&code).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promo code not found!", nil)
	}

	valid, reason := promoStatus(code, time.Now())
	if !valid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, reason, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promo code is valid!", fiber.Map{
		"code":        code.Code,
		"percent_off": code.PercentOff,
	})
}

// Subscribe creates a subscription for the caller, applying an optional
// promo code, and books the matching local invoice row.
func (h *Handler) Subscribe(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedSubscribe").(*struct {
		Plan      string `json:"plan" validate:"required,oneof=MONTHLY ANNUAL TEAM"`
		Seats     int    `json:"seats" validate:"omitempty,min=1,max=500"`
		PromoCode string `json:"promoCode"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// One active subscription per user
	var existing billingModels.Subscription
	if err := h.DB.Where("user_id = ? AND status = ? AND is_deleted = ?", user.ID, billingModels.SubscriptionActive, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already has an active subscription!", nil)
	}

	price := planPrice(reqData.Plan, reqData.Seats)
	now := time.Now()

	var promo *billingModels.PromoCode
	if reqData.PromoCode != "" {
		var code billingModels.PromoCode
		if err := h.DB.Where("code = ? AND is_deleted = ?", reqData.PromoCode, false).First(&code).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promo code not found!", nil)
		}
		valid, reason := promoStatus(code, now)
		if !valid {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, reason, nil)
		}
		price = price * int64(100-code.PercentOff) / 100
		promo = &code
	}

	expiresAt := now.Add(planDuration(reqData.Plan))
	subscription := billingModels.Subscription{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Plan:      reqData.Plan,
		Status:    billingModels.SubscriptionActive,
		Seats:     reqData.Seats,
		PriceHUF:  price,
		StartsAt:  &now,
		ExpiresAt: &expiresAt,
	}
	if promo != nil {
		subscription.PromoCode = promo.Code
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}
		if promo != nil {
			if err := tx.Model(promo).Update("redemptions", gorm.Expr("redemptions + 1")).Error; err != nil {
				return err
			}
		}
		invoice := billingModels.Invoice{
			UserID:           user.ID,
			SubscriptionID:   &subscription.ID,
			GatewayInvoiceID: payment.LocalInvoiceID(subscription.ID, now),
			AmountHUF:        price,
			IssuedAt:         &now,
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		h.Log.Errorw("failed to create subscription", "userId", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscribed successfully!", subscription)
}

// CancelSubscription marks the caller's active subscription cancelled. It
// stays usable until its expiry date.
func (h *Handler) CancelSubscription(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	var subscription billingModels.Subscription
	if err := h.DB.Where("user_id = ? AND status = ? AND is_deleted = ?", user.ID, billingModels.SubscriptionActive, false).
		First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active subscription found!", nil)
	}

	subscription.Status = billingModels.SubscriptionCancelled
	if err := h.DB.Save(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription cancelled.", subscription)
}

// GetInvoices lists the caller's invoices, enriched from the payment
// gateway. When the gateway is unreachable the local rows are served as-is.
func (h *Handler) GetInvoices(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	var invoices []billingModels.Invoice
	if err := h.DB.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&invoices).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invoices!", nil)
	}

	degraded := false
	if user.GatewayCustomerID != "" {
		remote, err := h.Gateway.InvoicesByCustomer(c.Context(), user.GatewayCustomerID)
		switch {
		case err == nil:
			byID := make(map[string]payment.Invoice, len(remote))
			for _, inv := range remote {
				byID[inv.InvoiceID] = inv
			}
			for i := range invoices {
				if inv, found := byID[invoices[i].GatewayInvoiceID]; found {
					invoices[i].Status = inv.Status
					invoices[i].DownloadURL = inv.DownloadURL
					invoices[i].PaidAt = inv.PaidAt
				}
			}
		case errors.Is(err, payment.ErrUnavailable):
			// serve local data without gateway enrichment
			degraded = true
			h.Log.Warnw("payment gateway unavailable, serving local invoices", "userId", user.ID)
		default:
			h.Log.Errorw("failed to fetch gateway invoices", "userId", user.ID, "error", err)
			degraded = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invoices fetched successfully!", fiber.Map{
		"invoices": invoices,
		"degraded": degraded,
	})
}
