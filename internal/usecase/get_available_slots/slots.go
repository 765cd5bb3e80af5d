package get_available_slots

import (
	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

// computeSlots вычисляет список доступных времен начала для бронирования
// суммарной длительностью totalMinutes в рамках рабочего окна календаря.
//
// Запрошенная длительность округляется вверх до целых часовых блоков,
// кандидаты перебираются с шагом 60 + interval_minutes от начала рабочего
// дня. Слот остается в списке, только если его блокирующее окно
// [t, t + roundedService + interval) не пересекается ни с одним занятым
// интервалом (пересечение по полуоткрытым интервалам: касание границ -
// не конфликт).
//
// TODO: slot_step_minutes из настроек читается и отдается в админке, но в
// живом расчете не участвует - шаг всегда часовой. Согласовать с продуктом,
// прежде чем менять: от шага зависит, какие слоты вообще легальны.
//
// TODO: обеденное окно (lunch_start/lunch_end) хранится, но из рабочего
// окна здесь не вычитается. Тоже согласовать с продуктом.
func computeSlots(
	calendar *domain.EffectiveCalendar,
	totalMinutes int,
	occupied []domain.Interval,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if totalMinutes <= 0 {
		return slots
	}

	roundedService := domain.RoundUpToServiceBlock(totalMinutes)
	step := domain.ServiceBlockMinutes + calendar.IntervalMinutes

	dayStart := calendar.StartTime.Minutes()
	dayEnd := calendar.EndTime.Minutes()

	for t := dayStart; t+roundedService <= dayEnd; t += step {
		blockedWindow := domain.Interval{
			Start: t,
			End:   t + roundedService + calendar.IntervalMinutes,
		}

		if hasConflict(blockedWindow, occupied) {
			continue
		}

		slots = append(slots, types.NewTimeStringFromMinutes(t))
	}

	return slots
}

// hasConflict проверяет пересечение окна кандидата с занятыми интервалами
func hasConflict(candidate domain.Interval, occupied []domain.Interval) bool {
	for _, interval := range occupied {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}

// occupiedIntervals собирает занятые интервалы из неотмененных бронирований
func occupiedIntervals(bookings []*domain.Booking) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(bookings))
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		intervals = append(intervals, booking.OccupiedInterval())
	}
	return intervals
}
