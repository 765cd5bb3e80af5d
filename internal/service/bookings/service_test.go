package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SalonBookingService/internal/domain"
	bookingRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/booking"
	"github.com/salonhub/SalonBookingService/internal/service/bookings/models"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error
	list    []*domain.Booking
	links   []domain.BookingServiceLink

	cancelled      bool
	cancelReason   string
	updatedStatus  domain.BookingStatus
	lastFilter     domain.SalonBookingsFilter
	lastUserStatus *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastUserStatus = status
	return f.list, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

func (f *fakeBookingRepo) GetServiceLinks(_ context.Context, _ int64) ([]domain.BookingServiceLink, error) {
	return f.links, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              100,
		SalonID:         1,
		UserID:          42,
		ProfessionalID:  7,
		BookingDate:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:10"),
		DurationMinutes: 45,
		TotalPrice:      1500,
		Status:          domain.StatusConfirmed,
		ClientName:      "Анна",
		ClientPhone:     "+79990001122",
	}
}

func TestGetByIDOwner(t *testing.T) {
	repo := &fakeBookingRepo{
		booking: confirmedBooking(),
		links: []domain.BookingServiceLink{
			{BookingID: 100, ServiceID: 3, ServiceName: "Стрижка", Price: 1500, DurationMinutes: 45},
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 100, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "2026-03-20", resp.BookingDate)
	assert.Equal(t, "10:10", resp.StartTime)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Стрижка", resp.Services[0].ServiceName)
}

func TestGetByIDForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 100, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 100, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelSuccess(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		UserID:             42,
		CancellationReason: "  передумала  ",
	})
	require.NoError(t, err)

	assert.True(t, repo.cancelled)
	assert.Equal(t, "передумала", repo.cancelReason)
}

func TestCancelForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.cancelled)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelCompletedBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 100, &models.CancelBookingRequest{
		UserID:             42,
		CancellationReason: strings.Repeat("о", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteSuccess(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Complete(context.Background(), 100, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
}

func TestCompleteWrongSalon(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Complete(context.Background(), 100, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCompleteCancelledBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, nopLogger{})

	err := svc.Complete(context.Background(), 100, 1)
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestGetUserBookingsStatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{confirmedBooking()}}
	svc := NewService(repo, nopLogger{})

	status := "completed"
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: &status,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastUserStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.lastUserStatus)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetUserBookingsInvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	status := "pending"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonBookingsFilterPassthrough(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewService(repo, nopLogger{})

	professionalID := int64(7)
	start := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		SalonID:         1,
		ProfessionalID:  &professionalID,
		StartDate:       &start,
		EndDate:         &end,
		IncludeInactive: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.lastFilter.SalonID)
	require.NotNil(t, repo.lastFilter.ProfessionalID)
	assert.Equal(t, int64(7), *repo.lastFilter.ProfessionalID)
	assert.True(t, repo.lastFilter.IncludeInactive)
	assert.NotNil(t, resp.Bookings, "empty list is a list, not null")
}
