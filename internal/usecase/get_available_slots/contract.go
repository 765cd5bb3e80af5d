package get_available_slots

import (
	"context"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByProfessionalAndDate получает неотмененные бронирования мастера на дату
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
