package coupons

import (
	"context"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// CouponRepository интерфейс репозитория промокодов
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error)
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.Coupon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
