package billingController

import (
	"testing"
	"time"

	billingModels "dma/models/billing"

	"github.com/stretchr/testify/assert"
)

func TestPromoStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		code  billingModels.PromoCode
		valid bool
	}{
		{
			name:  "active windowless code",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true},
			valid: true,
		},
		{
			name:  "inactive code",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: false},
			valid: false,
		},
		{
			name:  "not yet valid",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true, ValidFrom: &tomorrow},
			valid: false,
		},
		{
			name:  "expired",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true, ValidUntil: &yesterday},
			valid: false,
		},
		{
			name:  "inside window",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true, ValidFrom: &yesterday, ValidUntil: &tomorrow},
			valid: true,
		},
		{
			name:  "fully redeemed",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true, MaxRedemptions: 5, Redemptions: 5},
			valid: false,
		},
		{
			name:  "unlimited redemptions",
			code:  billingModels.PromoCode{PercentOff: 10, IsActive: true, MaxRedemptions: 0, Redemptions: 9999},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := promoStatus(tt.code, now)
			assert.Equal(t, tt.valid, valid)
			if !tt.valid {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPlanPrice(t *testing.T) {
	assert.Equal(t, int64(4990), planPrice(billingModels.PlanMonthly, 1))
	assert.Equal(t, int64(49900), planPrice(billingModels.PlanAnnual, 1))
	assert.Equal(t, int64(5*3990), planPrice(billingModels.PlanTeam, 5))
	// seats are floored at one so a malformed request never prices at zero
	assert.Equal(t, int64(3990), planPrice(billingModels.PlanTeam, 0))
	assert.Equal(t, int64(0), planPrice("UNKNOWN", 1))
}

func TestPlanDuration(t *testing.T) {
	assert.Equal(t, 365*24*time.Hour, planDuration(billingModels.PlanAnnual))
	assert.Equal(t, 30*24*time.Hour, planDuration(billingModels.PlanMonthly))
	assert.Equal(t, 30*24*time.Hour, planDuration(billingModels.PlanTeam))
}
