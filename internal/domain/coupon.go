package domain

import (
	"math"
	"strings"
	"time"
)

// DiscountType represents how a coupon discount is computed
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon represents a promotional code scoped to a salon
type Coupon struct {
	ID            int64
	SalonID       int64
	Code          string // normalized to uppercase
	DiscountType  DiscountType
	DiscountValue float64 // fixed: currency amount; percentage: 1-100
	MaxUses       int     // >= UnlimitedUsesSentinel means unlimited
	CurrentUses   int
	Active        bool
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsUnlimited returns true if the coupon has no usage cap
func (c *Coupon) IsUnlimited() bool {
	return c.MaxUses >= UnlimitedUsesSentinel
}

// IsSingleUse returns true if the coupon may be used at most once per user
func (c *Coupon) IsSingleUse() bool {
	return c.MaxUses == 1
}

// IsExpired returns true if the coupon has an expiry in the past
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// IsExhausted returns true if a capped coupon has reached its usage limit
func (c *Coupon) IsExhausted() bool {
	return !c.IsUnlimited() && c.CurrentUses >= c.MaxUses
}

// Discount computes the discount amount for a subtotal.
// Fixed discounts are capped at the subtotal; percentage discounts are
// rounded to 2 decimal places and also capped at the subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	var amount float64
	switch c.DiscountType {
	case DiscountFixed:
		amount = c.DiscountValue
	case DiscountPercentage:
		// subtotal * value / 100, rounded to 2 decimal places
		amount = math.Round(subtotal*c.DiscountValue) / 100
	default:
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// NormalizeCouponCode trims whitespace and uppercases a user-entered code
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CouponUsage is an append-only record of one coupon redemption
type CouponUsage struct {
	ID        int64
	CouponID  int64
	BookingID int64
	UserID    int64
	UsedAt    time.Time
}
