package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SalonBookingService/internal/domain"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	servicesRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/services"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByProfessionalAndDate(_ context.Context, _ int64, _ string) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeWorkSettingsRepo struct {
	settings *domain.WorkSettings
	err      error
}

func (f *fakeWorkSettingsRepo) GetBySalon(_ context.Context, _ int64) (*domain.WorkSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeProfessionalRepo struct {
	professional *domain.Professional
	schedule     *domain.ProfessionalSchedule
	err          error
}

func (f *fakeProfessionalRepo) GetByID(_ context.Context, _ int64) (*domain.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.professional, nil
}

func (f *fakeProfessionalRepo) GetSchedule(_ context.Context, _ int64, _ time.Time) (*domain.ProfessionalSchedule, error) {
	return f.schedule, nil
}

type fakeServicesRepo struct {
	services []*domain.Service
	err      error
}

func (f *fakeServicesRepo) GetActiveByIDs(_ context.Context, _ int64, _ []int64) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	bookings *fakeBookingRepo,
	settings *fakeWorkSettingsRepo,
	professionals *fakeProfessionalRepo,
	services *fakeServicesRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, settings, professionals, services, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func defaultFakes() (*fakeBookingRepo, *fakeWorkSettingsRepo, *fakeProfessionalRepo, *fakeServicesRepo) {
	return &fakeBookingRepo{},
		&fakeWorkSettingsRepo{settings: &domain.WorkSettings{
			SalonID:         1,
			StartTime:       types.TimeString("09:00"),
			EndTime:         types.TimeString("18:00"),
			IntervalMinutes: 10,
			SlotStepMinutes: 60,
			WorkingDays:     []int{1, 2, 3, 4, 5},
		}},
		&fakeProfessionalRepo{professional: &domain.Professional{ID: 7, SalonID: 1, Active: true}},
		&fakeServicesRepo{services: []*domain.Service{
			{ID: 3, SalonID: 1, DurationMinutes: 45, Price: 1500, Active: true},
		}}
}

// Понедельник, запрос слотов на пятницу той же недели
var (
	testNow  = time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
)

func testRequest() *Request {
	return &Request{
		SalonID:        1,
		ProfessionalID: 7,
		ServiceIDs:     []int64{3},
		Date:           testDate,
	}
}

func TestExecuteEmptyDay(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// 45 минут округляются до часа, шаг перебора 60+10
	want := []types.TimeString{"09:00", "10:10", "11:20", "12:30", "13:40", "14:50", "16:00"}
	require.Len(t, resp.Slots, len(want))
	for i, slot := range resp.Slots {
		assert.Equal(t, want[i], slot.StartTime)
		assert.Equal(t, 60, slot.DurationMinutes)
	}
	assert.Equal(t, 45, resp.TotalMinutes)
	assert.Equal(t, 1500.0, resp.TotalPrice)
}

func TestExecuteExistingBookingRemovesSlot(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	bookings.bookings = []*domain.Booking{
		{StartTime: types.TimeString("10:10"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	starts := make([]types.TimeString, len(resp.Slots))
	for i, slot := range resp.Slots {
		starts[i] = slot.StartTime
	}
	assert.NotContains(t, starts, types.TimeString("10:10"))
	// Соседние слоты не задеты: окно брони [10:10, 11:10) не пересекает
	// ни [09:00, 10:10), ни [11:20, 12:30)
	assert.Contains(t, starts, types.TimeString("09:00"))
	assert.Contains(t, starts, types.TimeString("11:20"))
}

func TestExecuteCancelledBookingIgnored(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	bookings.bookings = []*domain.Booking{
		{StartTime: types.TimeString("10:10"), DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	starts := make([]types.TimeString, len(resp.Slots))
	for i, slot := range resp.Slots {
		starts[i] = slot.StartTime
	}
	assert.Contains(t, starts, types.TimeString("10:10"))
}

func TestExecuteNonWorkingDay(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	req := testRequest()
	req.Date = time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC) // воскресенье

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteBlockedDate(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	professionals.schedule = &domain.ProfessionalSchedule{
		ProfessionalID: 7,
		BlockedDates:   []domain.BlockedDate{{ProfessionalID: 7, Date: testDate}},
	}
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecutePastDate(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteDefaultSettingsFallback(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	settings.settings = nil
	settings.err = workconfigRepo.ErrSettingsNotFound
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	// Суббота: рабочая по дефолтным настройкам
	req := testRequest()
	req.Date = time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Дефолты: 09:00-18:00, interval=0, шаг ровно час, 9 слотов
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[8].StartTime)
}

func TestExecuteProfessionalNotFound(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	professionals.professional = nil
	professionals.err = professionalRepo.ErrProfessionalNotFound
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecuteProfessionalFromAnotherSalon(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	professionals.professional = &domain.Professional{ID: 7, SalonID: 99, Active: true}
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecuteInactiveProfessional(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	professionals.professional = &domain.Professional{ID: 7, SalonID: 1, Active: false}
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecuteServiceNotFound(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	services.services = nil
	services.err = servicesRepo.ErrServiceNotFound
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteInvalidRequest(t *testing.T) {
	bookings, settings, professionals, services := defaultFakes()
	uc := newTestUseCase(bookings, settings, professionals, services, testNow)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero salon", func(r *Request) { r.SalonID = 0 }},
		{"zero professional", func(r *Request) { r.ProfessionalID = 0 }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComputeSlotsMultiServiceRounding(t *testing.T) {
	// 75 минут услуг округляются до 120, шаг 60+10
	cal := domain.ResolveCalendar(&domain.WorkSettings{
		StartTime:       types.TimeString("09:00"),
		EndTime:         types.TimeString("18:00"),
		IntervalMinutes: 10,
		SlotStepMinutes: 60,
		WorkingDays:     []int{1, 2, 3, 4, 5},
	}, nil, testNow)

	slots := computeSlots(cal, 75, nil)

	want := []types.TimeString{"09:00", "10:10", "11:20", "12:30", "13:40", "14:50", "16:00"}
	assert.Equal(t, want, slots)
}

func TestComputeSlotsZeroDuration(t *testing.T) {
	cal := domain.ResolveCalendar(domain.DefaultWorkSettings(1), nil, testNow)
	assert.Empty(t, computeSlots(cal, 0, nil))
}
