package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscountFixed(t *testing.T) {
	coupon := &Coupon{DiscountType: DiscountFixed, DiscountValue: 500}

	assert.Equal(t, 500.0, coupon.Discount(2000))
	// Fixed discount never exceeds the subtotal
	assert.Equal(t, 300.0, coupon.Discount(300))
	assert.Equal(t, 0.0, coupon.Discount(0))
}

func TestCouponDiscountPercentage(t *testing.T) {
	coupon := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}

	assert.Equal(t, 200.0, coupon.Discount(2000))
	// 10% of 100.50 = 10.05, exact after rounding to 2 decimal places
	assert.Equal(t, 10.05, coupon.Discount(100.50))
	// 15% of 99.99 = 14.9985 -> 15.00
	fifteen := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 15}
	assert.Equal(t, 15.0, fifteen.Discount(99.99))

	full := &Coupon{DiscountType: DiscountPercentage, DiscountValue: 100}
	assert.Equal(t, 2000.0, full.Discount(2000))
}

func TestCouponDiscountUnknownType(t *testing.T) {
	coupon := &Coupon{DiscountType: "bogus", DiscountValue: 10}
	assert.Equal(t, 0.0, coupon.Discount(1000))
}

func TestCouponUsageLimits(t *testing.T) {
	unlimited := &Coupon{MaxUses: UnlimitedUsesSentinel, CurrentUses: 5000000}
	assert.True(t, unlimited.IsUnlimited())
	assert.False(t, unlimited.IsExhausted())
	assert.False(t, unlimited.IsSingleUse())

	capped := &Coupon{MaxUses: 10, CurrentUses: 9}
	assert.False(t, capped.IsUnlimited())
	assert.False(t, capped.IsExhausted())

	capped.CurrentUses = 10
	assert.True(t, capped.IsExhausted())

	single := &Coupon{MaxUses: 1, CurrentUses: 0}
	assert.True(t, single.IsSingleUse())
}

func TestCouponIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	eternal := &Coupon{}
	assert.False(t, eternal.IsExpired(now))

	past := now.Add(-time.Hour)
	expired := &Coupon{ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))

	future := now.Add(time.Hour)
	alive := &Coupon{ExpiresAt: &future}
	assert.False(t, alive.IsExpired(now))
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SUMMER20", NormalizeCouponCode("  summer20 "))
	assert.Equal(t, "SUMMER20", NormalizeCouponCode("SUMMER20"))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}
