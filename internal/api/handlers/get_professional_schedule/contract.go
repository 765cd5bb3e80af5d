package get_professional_schedule

import (
	"context"

	"github.com/salonhub/SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetProfessionalSchedule(ctx context.Context, salonID, professionalID int64) (*models.ProfessionalScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
