package get_salon_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	"github.com/salonhub/SalonBookingService/internal/service/bookings/models"
)

// ParseQuery собирает запрос к сервису из query параметров:
// professionalId, startDate, endDate, status, includeInactive
func ParseQuery(salonID int64, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{SalonID: salonID}

	if raw := query.Get("professionalId"); raw != "" {
		professionalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &professionalID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
