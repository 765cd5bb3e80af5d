package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SalonBookingService/internal/domain"
	bookingRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/booking"
	validateCoupon "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
	"github.com/salonhub/SalonBookingService/pkg/ptr"
	"github.com/salonhub/SalonBookingService/pkg/types"
)

type fakeBookingRepo struct {
	existing  []*domain.Booking
	createErr error
	linksErr  error

	created      *domain.Booking
	createdLinks []domain.BookingServiceLink
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 100
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) CreateServiceLinks(_ context.Context, links []domain.BookingServiceLink) error {
	if f.linksErr != nil {
		return f.linksErr
	}
	f.createdLinks = links
	return nil
}

func (f *fakeBookingRepo) GetActiveByProfessionalAndDate(_ context.Context, _ int64, _ string) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeWorkSettingsRepo struct {
	settings *domain.WorkSettings
}

func (f *fakeWorkSettingsRepo) GetBySalon(_ context.Context, _ int64) (*domain.WorkSettings, error) {
	return f.settings, nil
}

type fakeProfessionalRepo struct {
	professional *domain.Professional
	schedule     *domain.ProfessionalSchedule
}

func (f *fakeProfessionalRepo) GetByID(_ context.Context, _ int64) (*domain.Professional, error) {
	return f.professional, nil
}

func (f *fakeProfessionalRepo) GetSchedule(_ context.Context, _ int64, _ time.Time) (*domain.ProfessionalSchedule, error) {
	return f.schedule, nil
}

type fakeServicesRepo struct {
	services []*domain.Service
}

func (f *fakeServicesRepo) GetActiveByIDs(_ context.Context, _ int64, _ []int64) ([]*domain.Service, error) {
	return f.services, nil
}

type fakeUsageRepo struct {
	err   error
	calls int
}

func (f *fakeUsageRepo) InsertUsage(_ context.Context, _, _, _ int64) error {
	f.calls++
	return f.err
}

type fakeProfileRepo struct {
	calls int
}

func (f *fakeProfileRepo) Upsert(_ context.Context, _ int64, _, _ string) error {
	f.calls++
	return nil
}

type fakeCouponValidator struct {
	result  *validateCoupon.Result
	err     error
	calls   int
	lastReq *validateCoupon.Request
}

func (f *fakeCouponValidator) Execute(_ context.Context, req *validateCoupon.Request) (*validateCoupon.Result, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

// fakeTxManager выполняет функцию без настоящей транзакции и считает откаты
type fakeTxManager struct {
	rollbacks int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	return nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow  = time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC) // понедельник
	testDate = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC) // пятница
)

type fixture struct {
	bookings      *fakeBookingRepo
	settings      *fakeWorkSettingsRepo
	professionals *fakeProfessionalRepo
	services      *fakeServicesRepo
	usages        *fakeUsageRepo
	profiles      *fakeProfileRepo
	coupons       *fakeCouponValidator
	tx            *fakeTxManager
	uc            *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		settings: &fakeWorkSettingsRepo{settings: &domain.WorkSettings{
			SalonID:         1,
			StartTime:       types.TimeString("09:00"),
			EndTime:         types.TimeString("18:00"),
			IntervalMinutes: 10,
			SlotStepMinutes: 60,
			WorkingDays:     []int{1, 2, 3, 4, 5},
		}},
		professionals: &fakeProfessionalRepo{
			professional: &domain.Professional{ID: 7, SalonID: 1, Active: true},
		},
		services: &fakeServicesRepo{services: []*domain.Service{
			{ID: 3, SalonID: 1, Name: "Стрижка", DurationMinutes: 45, Price: 1500, Active: true},
		}},
		usages:   &fakeUsageRepo{},
		profiles: &fakeProfileRepo{},
		coupons:  &fakeCouponValidator{},
		tx:       &fakeTxManager{},
	}

	f.uc = NewUseCase(
		f.bookings, f.settings, f.professionals, f.services,
		f.usages, f.profiles, f.coupons, f.tx, nopLogger{},
	)
	f.uc.timeProvider = &fixedTime{now: testNow}
	return f
}

func testRequest() *Request {
	return &Request{
		SalonID:        1,
		UserID:         42,
		ProfessionalID: 7,
		ServiceIDs:     []int64{3},
		Date:           testDate,
		StartTime:      types.TimeString("10:10"),
		ClientName:     "Анна",
		ClientPhone:    "+79990001122",
	}
}

func TestExecuteSuccess(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 45, resp.DurationMinutes, "stores actual duration, not the rounded block")
	assert.Equal(t, 1500.0, resp.Subtotal)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.Nil(t, resp.CouponCode)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Стрижка", resp.Services[0].Name)

	// Пост-коммитные шаги выполнены
	require.Len(t, f.bookings.createdLinks, 1)
	assert.Equal(t, int64(100), f.bookings.createdLinks[0].BookingID)
	assert.Equal(t, 1, f.profiles.calls)
	assert.Equal(t, 0, f.usages.calls, "no coupon, no usage row")
}

func TestExecuteConflictUsesActualDuration(t *testing.T) {
	f := newFixture()
	// Существующая бронь 09:30-10:15 пересекается с новой 10:10-10:55
	f.bookings.existing = []*domain.Booking{
		{StartTime: types.TimeString("09:30"), DurationMinutes: 45, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestExecuteNoGapBetweenBookings(t *testing.T) {
	f := newFixture()
	// Существующая бронь заканчивается ровно в 10:10: касание границ - не
	// конфликт, буферный интервал при подтверждении не проверяется
	f.bookings.existing = []*domain.Booking{
		{StartTime: types.TimeString("09:25"), DurationMinutes: 45, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.NoError(t, err)
}

func TestExecuteUniqueIndexViolationMapsToConflict(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecuteWithCoupon(t *testing.T) {
	f := newFixture()
	f.coupons.result = &validateCoupon.Result{
		Valid:          true,
		CouponID:       10,
		Code:           "SUMMER20",
		DiscountAmount: 300,
		FinalTotal:     1200,
	}

	req := testRequest()
	req.CouponCode = ptr.Ptr("summer20")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, resp.TotalPrice)
	assert.Equal(t, 300.0, resp.DiscountAmount)
	require.NotNil(t, resp.CouponCode)
	assert.Equal(t, "SUMMER20", *resp.CouponCode)

	// Купон применяется, а не просто проверяется
	require.Equal(t, 1, f.coupons.calls)
	assert.Equal(t, validateCoupon.ActionApply, f.coupons.lastReq.Action)
	assert.Equal(t, 1500.0, f.coupons.lastReq.Subtotal)

	// Журнал использований пишется после коммита
	assert.Equal(t, 1, f.usages.calls)
}

func TestExecuteCouponRejectionRollsBack(t *testing.T) {
	f := newFixture()
	f.coupons.result = &validateCoupon.Result{Valid: false, Reason: "промокод не найден"}

	req := testRequest()
	req.CouponCode = ptr.Ptr("BOGUS")

	_, err := f.uc.Execute(context.Background(), req)
	require.Error(t, err)

	var rejected *CouponRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "промокод не найден", rejected.Reason)
	assert.False(t, rejected.Retryable)

	// Отказ купона откатывает транзакцию: бронирование не создано
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Equal(t, 0, f.usages.calls)
	assert.Equal(t, 0, f.profiles.calls)
}

func TestExecuteCouponApplyRaceIsRetryable(t *testing.T) {
	f := newFixture()
	f.coupons.result = &validateCoupon.Result{
		Valid:     false,
		Reason:    "не удалось применить промокод, попробуйте еще раз",
		Retryable: true,
	}

	req := testRequest()
	req.CouponCode = ptr.Ptr("SUMMER20")

	_, err := f.uc.Execute(context.Background(), req)
	var rejected *CouponRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.True(t, rejected.Retryable)
}

func TestExecutePastDate(t *testing.T) {
	f := newFixture()
	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteNonWorkingDay(t *testing.T) {
	f := newFixture()
	req := testRequest()
	req.Date = time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayUnavailable)
}

func TestExecuteBlockedDate(t *testing.T) {
	f := newFixture()
	f.professionals.schedule = &domain.ProfessionalSchedule{
		ProfessionalID: 7,
		BlockedDates:   []domain.BlockedDate{{ProfessionalID: 7, Date: testDate}},
	}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrDayUnavailable)
}

func TestExecuteInactiveProfessional(t *testing.T) {
	f := newFixture()
	f.professionals.professional = &domain.Professional{ID: 7, SalonID: 1, Active: false}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecuteServiceLinksFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.bookings.linksErr = errors.New("disk full")

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err, "booking survives a post-commit failure")
	assert.Equal(t, int64(100), resp.ID)
}

func TestExecuteInvalidInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"blank client name", func(r *Request) { r.ClientName = " " }},
		{"blank client phone", func(r *Request) { r.ClientPhone = "" }},
		{"blank coupon code", func(r *Request) { r.CouponCode = ptr.Ptr("   ") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
