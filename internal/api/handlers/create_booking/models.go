package create_booking

import (
	"time"

	"github.com/salonhub/SalonBookingService/internal/domain"
	createBooking "github.com/salonhub/SalonBookingService/internal/usecase/create_booking"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID        int64   `json:"salonId"`
	ProfessionalID int64   `json:"professionalId"`
	ServiceIDs     []int64 `json:"serviceIds"`
	BookingDate    string  `json:"bookingDate"` // "2026-08-28"
	StartTime      string  `json:"startTime"`   // "10:00"
	CouponCode     *string `json:"couponCode,omitempty"`
	ClientName     string  `json:"clientName"`
	ClientPhone    string  `json:"clientPhone"`
}

// BookedServiceResponse услуга в составе созданного бронирования
type BookedServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                   `json:"id"`
	SalonID         int64                   `json:"salonId"`
	UserID          int64                   `json:"userId"`
	ProfessionalID  int64                   `json:"professionalId"`
	BookingDate     string                  `json:"bookingDate"`
	StartTime       string                  `json:"startTime"`
	DurationMinutes int                     `json:"durationMinutes"`
	Status          string                  `json:"status"`
	Services        []BookedServiceResponse `json:"services"`
	Subtotal        float64                 `json:"subtotal"`
	DiscountAmount  float64                 `json:"discountAmount"`
	TotalPrice      float64                 `json:"totalPrice"`
	CouponCode      *string                 `json:"couponCode,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SalonID:        r.SalonID,
		UserID:         userID,
		ProfessionalID: r.ProfessionalID,
		ServiceIDs:     r.ServiceIDs,
		Date:           bookingDate,
		StartTime:      startTime,
		CouponCode:     r.CouponCode,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookedServiceResponse, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = BookedServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &BookingResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		UserID:          resp.UserID,
		ProfessionalID:  resp.ProfessionalID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Services:        services,
		Subtotal:        resp.Subtotal,
		DiscountAmount:  resp.DiscountAmount,
		TotalPrice:      resp.TotalPrice,
		CouponCode:      resp.CouponCode,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
