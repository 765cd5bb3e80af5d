package validate_coupon

import (
	"context"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// CouponRepository интерфейс репозитория промокодов
type CouponRepository interface {
	GetByCode(ctx context.Context, salonID int64, code string) (*domain.Coupon, error)
	UsageExistsForUser(ctx context.Context, couponID, userID int64) (bool, error)
	// ConditionalIncrementUsage атомарный инкремент с оптимистичной блокировкой
	ConditionalIncrementUsage(ctx context.Context, couponID int64, expectedCurrentUses int) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
