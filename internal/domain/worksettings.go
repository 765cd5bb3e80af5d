package domain

import (
	"time"

	"github.com/salonhub/SalonBookingService/pkg/types"
)

// WorkSettings is the salon-wide booking configuration
type WorkSettings struct {
	SalonID         int64
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int // gap enforced after each booking
	SlotStepMinutes int // admin-configured slot granularity
	LunchStart      *types.TimeString
	LunchEnd        *types.TimeString
	WorkingDays     []int // 0=Sunday .. 6=Saturday; empty = closed every day
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasLunchWindow returns true if both lunch boundaries are configured
func (w *WorkSettings) HasLunchWindow() bool {
	return w.LunchStart != nil && w.LunchEnd != nil
}

// WorksOn returns true if the salon-wide working days include the weekday
func (w *WorkSettings) WorksOn(weekday time.Weekday) bool {
	for _, d := range w.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// DefaultWorkSettings returns the configuration used when a salon
// has no work_settings row yet
func DefaultWorkSettings(salonID int64) *WorkSettings {
	return &WorkSettings{
		SalonID:         salonID,
		StartTime:       types.TimeString(DefaultStartTime),
		EndTime:         types.TimeString(DefaultEndTime),
		IntervalMinutes: DefaultIntervalMinutes,
		SlotStepMinutes: DefaultSlotStepMinutes,
		WorkingDays:     []int{1, 2, 3, 4, 5, 6}, // Monday..Saturday
	}
}

// BlockedDate is a one-off date a professional is unavailable on
type BlockedDate struct {
	ProfessionalID int64
	Date           time.Time
	Reason         *string
}

// ProfessionalSchedule holds per-professional overrides of the salon settings
type ProfessionalSchedule struct {
	ProfessionalID int64
	WorkingDays    *[]int // nil = inherit WorkSettings.WorkingDays
	BlockedDates   []BlockedDate
}
