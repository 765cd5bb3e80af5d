package domain

import (
	"time"

	"github.com/salonhub/SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// InactiveStatuses are statuses that do not occupy calendar time
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// Booking represents a multi-service appointment in the system
type Booking struct {
	ID              int64
	SalonID         int64
	UserID          int64
	ProfessionalID  int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int     // snapshot of the sum of service durations at creation time
	TotalPrice      float64 // authoritative price after coupon, if any
	CouponID        *int64
	Status          BookingStatus

	// Denormalized client data for history
	ClientName  string
	ClientPhone string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies time on the calendar
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// OccupiedInterval returns the half-open minute range this booking reserves
func (b *Booking) OccupiedInterval() Interval {
	start := b.StartTime.Minutes()
	return Interval{Start: start, End: start + b.DurationMinutes}
}

// BookingServiceLink is a per-service snapshot row attached to a booking
type BookingServiceLink struct {
	BookingID       int64
	ServiceID       int64
	ServiceName     string
	Price           float64
	DurationMinutes int
}

// SalonBookingsFilter filters bookings of a salon
type SalonBookingsFilter struct {
	SalonID         int64
	ProfessionalID  *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
