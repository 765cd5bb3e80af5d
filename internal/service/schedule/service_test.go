package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SalonBookingService/internal/domain"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
	"github.com/salonhub/SalonBookingService/internal/service/schedule/models"
)

type fakeWorkSettingsRepo struct {
	settings *domain.WorkSettings
	getErr   error

	upserted *domain.WorkSettings
}

func (f *fakeWorkSettingsRepo) GetBySalon(_ context.Context, _ int64) (*domain.WorkSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings, nil
}

func (f *fakeWorkSettingsRepo) Upsert(_ context.Context, settings *domain.WorkSettings) (*domain.WorkSettings, error) {
	f.upserted = settings
	return settings, nil
}

type fakeProfessionalRepo struct {
	professional *domain.Professional
	getErr       error
	schedule     *domain.ProfessionalSchedule

	workingDaysSet  bool
	lastWorkingDays *[]int
	blockedAdded    []domain.BlockedDate
	removedDates    []time.Time
	removeErr       error
}

func (f *fakeProfessionalRepo) GetByID(_ context.Context, _ int64) (*domain.Professional, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.professional, nil
}

func (f *fakeProfessionalRepo) GetSchedule(_ context.Context, _ int64, _ time.Time) (*domain.ProfessionalSchedule, error) {
	return f.schedule, nil
}

func (f *fakeProfessionalRepo) SetWorkingDays(_ context.Context, _ int64, workingDays *[]int) error {
	f.workingDaysSet = true
	f.lastWorkingDays = workingDays
	return nil
}

func (f *fakeProfessionalRepo) AddBlockedDate(_ context.Context, blocked domain.BlockedDate) error {
	f.blockedAdded = append(f.blockedAdded, blocked)
	return nil
}

func (f *fakeProfessionalRepo) RemoveBlockedDate(_ context.Context, _ int64, date time.Time) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedDates = append(f.removedDates, date)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(settings *fakeWorkSettingsRepo, professionals *fakeProfessionalRepo) *Service {
	return NewService(settings, professionals, nopLogger{})
}

func validUpdateRequest() *models.UpdateWorkSettingsRequest {
	return &models.UpdateWorkSettingsRequest{
		SalonID:         1,
		StartTime:       "09:00",
		EndTime:         "18:00",
		IntervalMinutes: 10,
		SlotStepMinutes: 60,
		WorkingDays:     []int{1, 2, 3, 4, 5},
	}
}

func TestGetWorkSettingsDefaultsFallback(t *testing.T) {
	settings := &fakeWorkSettingsRepo{getErr: workconfigRepo.ErrSettingsNotFound}
	svc := newTestService(settings, &fakeProfessionalRepo{})

	resp, err := svc.GetWorkSettings(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "18:00", resp.EndTime)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.WorkingDays)
}

func TestGetWorkSettingsConfigured(t *testing.T) {
	settings := &fakeWorkSettingsRepo{settings: &domain.WorkSettings{
		SalonID:     1,
		StartTime:   "10:00",
		EndTime:     "20:00",
		WorkingDays: []int{2, 3},
	}}
	svc := newTestService(settings, &fakeProfessionalRepo{})

	resp, err := svc.GetWorkSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestUpdateWorkSettingsSuccess(t *testing.T) {
	settings := &fakeWorkSettingsRepo{}
	svc := newTestService(settings, &fakeProfessionalRepo{})

	resp, err := svc.UpdateWorkSettings(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.StartTime)
	require.NotNil(t, settings.upserted)
	assert.Equal(t, int64(1), settings.upserted.SalonID)
}

func TestUpdateWorkSettingsValidation(t *testing.T) {
	svc := newTestService(&fakeWorkSettingsRepo{}, &fakeProfessionalRepo{})

	lunch := func(start, end string) (*string, *string) { return &start, &end }

	tests := []struct {
		name   string
		mutate func(*models.UpdateWorkSettingsRequest)
	}{
		{"bad start time", func(r *models.UpdateWorkSettingsRequest) { r.StartTime = "9:00am" }},
		{"start after end", func(r *models.UpdateWorkSettingsRequest) { r.StartTime = "19:00" }},
		{"start equals end", func(r *models.UpdateWorkSettingsRequest) { r.StartTime = "18:00" }},
		{"interval too large", func(r *models.UpdateWorkSettingsRequest) { r.IntervalMinutes = 121 }},
		{"negative interval", func(r *models.UpdateWorkSettingsRequest) { r.IntervalMinutes = -1 }},
		{"step too small", func(r *models.UpdateWorkSettingsRequest) { r.SlotStepMinutes = 4 }},
		{"step too large", func(r *models.UpdateWorkSettingsRequest) { r.SlotStepMinutes = 241 }},
		{"day out of range", func(r *models.UpdateWorkSettingsRequest) { r.WorkingDays = []int{1, 7} }},
		{"duplicate day", func(r *models.UpdateWorkSettingsRequest) { r.WorkingDays = []int{1, 1} }},
		{"lunch start only", func(r *models.UpdateWorkSettingsRequest) {
			s := "13:00"
			r.LunchStart = &s
		}},
		{"lunch reversed", func(r *models.UpdateWorkSettingsRequest) {
			r.LunchStart, r.LunchEnd = lunch("14:00", "13:00")
		}},
		{"lunch outside working hours", func(r *models.UpdateWorkSettingsRequest) {
			r.LunchStart, r.LunchEnd = lunch("08:00", "09:30")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpdateRequest()
			tt.mutate(req)
			_, err := svc.UpdateWorkSettings(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateWorkSettingsWithLunch(t *testing.T) {
	settings := &fakeWorkSettingsRepo{}
	svc := newTestService(settings, &fakeProfessionalRepo{})

	req := validUpdateRequest()
	ls, le := "13:00", "14:00"
	req.LunchStart, req.LunchEnd = &ls, &le

	resp, err := svc.UpdateWorkSettings(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.LunchStart)
	assert.Equal(t, "13:00", *resp.LunchStart)
}

func TestUpdateProfessionalSchedule(t *testing.T) {
	override := []int{2, 3, 4}
	professionals := &fakeProfessionalRepo{
		professional: &domain.Professional{ID: 7, SalonID: 1, Active: true},
		schedule: &domain.ProfessionalSchedule{
			ProfessionalID: 7,
			WorkingDays:    &override,
		},
	}
	svc := newTestService(&fakeWorkSettingsRepo{}, professionals)

	reason := "отпуск"
	req := &models.UpdateProfessionalScheduleRequest{
		SalonID:        1,
		ProfessionalID: 7,
		WorkingDays:    &override,
		BlockDates:     []models.BlockDateRequest{{Date: "2026-09-01", Reason: &reason}},
		UnblockDates:   []string{"2026-08-30"},
	}

	resp, err := svc.UpdateProfessionalSchedule(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, professionals.workingDaysSet)
	require.NotNil(t, professionals.lastWorkingDays)
	assert.Equal(t, override, *professionals.lastWorkingDays)

	require.Len(t, professionals.blockedAdded, 1)
	assert.Equal(t, "2026-09-01", professionals.blockedAdded[0].Date.Format(domain.DateFormat))

	require.Len(t, professionals.removedDates, 1)
	assert.Equal(t, int64(7), resp.ProfessionalID)
}

func TestUpdateProfessionalScheduleUnblockMissingDateIgnored(t *testing.T) {
	professionals := &fakeProfessionalRepo{
		professional: &domain.Professional{ID: 7, SalonID: 1, Active: true},
		schedule:     &domain.ProfessionalSchedule{ProfessionalID: 7},
		removeErr:    professionalRepo.ErrBlockedDateNotFound,
	}
	svc := newTestService(&fakeWorkSettingsRepo{}, professionals)

	req := &models.UpdateProfessionalScheduleRequest{
		SalonID:        1,
		ProfessionalID: 7,
		UnblockDates:   []string{"2026-08-30"},
	}

	// Снятие несуществующей блокировки - идемпотентная операция
	_, err := svc.UpdateProfessionalSchedule(context.Background(), req)
	assert.NoError(t, err)
}

func TestUpdateProfessionalScheduleWrongSalon(t *testing.T) {
	professionals := &fakeProfessionalRepo{
		professional: &domain.Professional{ID: 7, SalonID: 99, Active: true},
	}
	svc := newTestService(&fakeWorkSettingsRepo{}, professionals)

	req := &models.UpdateProfessionalScheduleRequest{SalonID: 1, ProfessionalID: 7}
	_, err := svc.UpdateProfessionalSchedule(context.Background(), req)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestUpdateProfessionalScheduleInvalidDate(t *testing.T) {
	professionals := &fakeProfessionalRepo{
		professional: &domain.Professional{ID: 7, SalonID: 1, Active: true},
	}
	svc := newTestService(&fakeWorkSettingsRepo{}, professionals)

	req := &models.UpdateProfessionalScheduleRequest{
		SalonID:        1,
		ProfessionalID: 7,
		BlockDates:     []models.BlockDateRequest{{Date: "30-08-2026"}},
	}
	_, err := svc.UpdateProfessionalSchedule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProfessionalScheduleNotFound(t *testing.T) {
	professionals := &fakeProfessionalRepo{getErr: professionalRepo.ErrProfessionalNotFound}
	svc := newTestService(&fakeWorkSettingsRepo{}, professionals)

	_, err := svc.GetProfessionalSchedule(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
