package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	getAvailableSlots "github.com/salonhub/SalonBookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string         `json:"date"` // "2026-08-28"
	SalonID        int64          `json:"salonId"`
	ProfessionalID int64          `json:"professionalId"`
	ServiceIDs     []int64        `json:"serviceIds"`
	TotalMinutes   int            `json:"totalMinutes"`
	TotalPrice     float64        `json:"totalPrice"`
	Slots          []SlotResponse `json:"slots"`
}

// ParseServiceIDs парсит список ID услуг из query параметра "1,2,3"
func ParseServiceIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ToUseCaseRequest конвертирует параметры HTTP запроса в модель use case
func ToUseCaseRequest(salonID, professionalID int64, serviceIDs []int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		ServiceIDs:     serviceIDs,
		Date:           date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		SalonID:        resp.SalonID,
		ProfessionalID: resp.ProfessionalID,
		ServiceIDs:     resp.ServiceIDs,
		TotalMinutes:   resp.TotalMinutes,
		TotalPrice:     resp.TotalPrice,
		Slots:          slots,
	}
}
