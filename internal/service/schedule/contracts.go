package schedule

import (
	"context"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// WorkSettingsRepository интерфейс репозитория настроек рабочего дня
type WorkSettingsRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.WorkSettings, error)
	Upsert(ctx context.Context, settings *domain.WorkSettings) (*domain.WorkSettings, error)
}

// ProfessionalRepository интерфейс репозитория мастеров
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetSchedule(ctx context.Context, professionalID int64, today time.Time) (*domain.ProfessionalSchedule, error)
	SetWorkingDays(ctx context.Context, professionalID int64, workingDays *[]int) error
	AddBlockedDate(ctx context.Context, blocked domain.BlockedDate) error
	RemoveBlockedDate(ctx context.Context, professionalID int64, date time.Time) error
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
