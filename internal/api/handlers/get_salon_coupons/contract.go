package get_salon_coupons

import (
	"context"

	"github.com/salonhub/SalonBookingService/internal/service/coupons/models"
)

type CouponService interface {
	List(ctx context.Context, salonID int64) (*models.CouponListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
