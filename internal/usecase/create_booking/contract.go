package create_booking

import (
	"context"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	validateCoupon "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateServiceLinks(ctx context.Context, links []domain.BookingServiceLink) error
	GetActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date string) ([]*domain.Booking, error)
}

// WorkSettingsRepository интерфейс репозитория настроек рабочего дня
type WorkSettingsRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.WorkSettings, error)
}

// ProfessionalRepository интерфейс репозитория мастеров
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetSchedule(ctx context.Context, professionalID int64, today time.Time) (*domain.ProfessionalSchedule, error)
}

// ServicesRepository интерфейс репозитория услуг
type ServicesRepository interface {
	GetActiveByIDs(ctx context.Context, salonID int64, ids []int64) ([]*domain.Service, error)
}

// CouponUsageRepository интерфейс журнала использований промокодов
type CouponUsageRepository interface {
	InsertUsage(ctx context.Context, couponID, bookingID, userID int64) error
}

// CouponValidator интерфейс usecase валидации/применения промокодов
type CouponValidator interface {
	Execute(ctx context.Context, req *validateCoupon.Request) (*validateCoupon.Result, error)
}

// ProfileRepository интерфейс кэша профилей клиентов
type ProfileRepository interface {
	Upsert(ctx context.Context, userID int64, name, phone string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
