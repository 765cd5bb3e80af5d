package models

import (
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// Request модели

// CreateCouponRequest запрос на создание промокода
type CreateCouponRequest struct {
	SalonID       int64      `json:"salonId"`
	Code          string     `json:"code"`          // Нормализуется (uppercase, trim)
	DiscountType  string     `json:"discountType"`  // "fixed" или "percentage"
	DiscountValue float64    `json:"discountValue"` // fixed: сумма; percentage: 1-100
	MaxUses       *int       `json:"maxUses,omitempty"` // null = без лимита
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// ToDomainCoupon конвертирует request в domain модель.
// Отсутствие лимита кодируется сентинельным значением max_uses.
func (r *CreateCouponRequest) ToDomainCoupon() *domain.Coupon {
	maxUses := domain.UnlimitedUsesSentinel
	if r.MaxUses != nil {
		maxUses = *r.MaxUses
	}

	return &domain.Coupon{
		SalonID:       r.SalonID,
		Code:          domain.NormalizeCouponCode(r.Code),
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		MaxUses:       maxUses,
		CurrentUses:   0,
		Active:        true,
		ExpiresAt:     r.ExpiresAt,
	}
}

// Response модели

// CouponResponse ответ с данными промокода
type CouponResponse struct {
	ID            int64      `json:"id"`
	SalonID       int64      `json:"salonId"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	MaxUses       *int       `json:"maxUses,omitempty"` // null = без лимита
	CurrentUses   int        `json:"currentUses"`
	Active        bool       `json:"active"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CouponListResponse ответ со списком промокодов
type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

// Методы конвертации

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}

	resp := &CouponResponse{
		ID:            c.ID,
		SalonID:       c.SalonID,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		CurrentUses:   c.CurrentUses,
		Active:        c.Active,
		ExpiresAt:     c.ExpiresAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}

	if !c.IsUnlimited() {
		maxUses := c.MaxUses
		resp.MaxUses = &maxUses
	}

	return resp
}

// FromDomainCouponList конвертирует список domain моделей в DTO
func FromDomainCouponList(coupons []*domain.Coupon) *CouponListResponse {
	if coupons == nil {
		return &CouponListResponse{
			Coupons: []CouponResponse{},
		}
	}

	resp := &CouponListResponse{
		Coupons: make([]CouponResponse, len(coupons)),
	}

	for i, coupon := range coupons {
		if couponResp := FromDomainCoupon(coupon); couponResp != nil {
			resp.Coupons[i] = *couponResp
		}
	}

	return resp
}
