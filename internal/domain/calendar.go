package domain

import (
	"time"

	"github.com/salonhub/SalonBookingService/pkg/types"
)

// EffectiveCalendar is the merged result of salon-wide work settings and a
// professional's personal overrides, valid for one resolution instant.
type EffectiveCalendar struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	SlotStepMinutes int
	WorkingDays     []int
	blockedDates    map[string]struct{} // keyed by YYYY-MM-DD
}

// ResolveCalendar merges work settings with a professional's schedule.
// A nil schedule means "no overrides, no blocked dates". The professional's
// working-day override, when present, replaces the salon set entirely.
// Blocked dates in the past are dropped - they must not suppress future slots.
func ResolveCalendar(settings *WorkSettings, schedule *ProfessionalSchedule, today time.Time) *EffectiveCalendar {
	cal := &EffectiveCalendar{
		StartTime:       settings.StartTime,
		EndTime:         settings.EndTime,
		IntervalMinutes: settings.IntervalMinutes,
		SlotStepMinutes: settings.SlotStepMinutes,
		WorkingDays:     settings.WorkingDays,
		blockedDates:    make(map[string]struct{}),
	}

	if schedule == nil {
		return cal
	}

	if schedule.WorkingDays != nil {
		cal.WorkingDays = *schedule.WorkingDays
	}

	todayOnly := truncateToDay(today)
	for _, blocked := range schedule.BlockedDates {
		if truncateToDay(blocked.Date).Before(todayOnly) {
			continue
		}
		cal.blockedDates[blocked.Date.Format(DateFormat)] = struct{}{}
	}

	return cal
}

// WorksOn returns true if the effective working days include the weekday
func (c *EffectiveCalendar) WorksOn(weekday time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// IsBlocked returns true if the date is in the professional's blocked set
func (c *EffectiveCalendar) IsBlocked(date time.Time) bool {
	_, ok := c.blockedDates[date.Format(DateFormat)]
	return ok
}

// IsBookable returns true if a calendar day can accept bookings at all:
// its weekday is a working day, the date is not blocked and not in the past.
func (c *EffectiveCalendar) IsBookable(date, today time.Time) bool {
	if truncateToDay(date).Before(truncateToDay(today)) {
		return false
	}
	if !c.WorksOn(date.Weekday()) {
		return false
	}
	return !c.IsBlocked(date)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
