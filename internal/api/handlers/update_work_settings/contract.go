package update_work_settings

import (
	"context"

	"github.com/salonhub/SalonBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateWorkSettings(ctx context.Context, req *models.UpdateWorkSettingsRequest) (*models.WorkSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
