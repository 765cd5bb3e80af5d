package create_booking

import (
	"fmt"
	"strings"

	"github.com/salonhub/SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.CouponCode != nil && domain.NormalizeCouponCode(*req.CouponCode) == "" {
		return fmt.Errorf("%w: couponCode must not be empty when provided", ErrInvalidInput)
	}

	return nil
}

// checkSlotConflict проверяет пересечение нового бронирования с занятыми
// интервалами. Новое бронирование занимает фактическую суммарную длительность
// услуг, начиная со startTime; буферный интервал салона здесь не учитывается.
func checkSlotConflict(newInterval domain.Interval, existing []*domain.Booking) error {
	for _, b := range existing {
		if newInterval.Overlaps(b.OccupiedInterval()) {
			return ErrSlotConflict
		}
	}
	return nil
}
