package validate_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SalonBookingService/internal/domain"
	couponRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/coupon"
)

type fakeCouponRepo struct {
	coupon       *domain.Coupon
	getErr       error
	usageExists  bool
	usageErr     error
	incrementErr error

	incrementCalls int
	lastExpected   int
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, _ int64, _ string) (*domain.Coupon, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.coupon, nil
}

func (f *fakeCouponRepo) UsageExistsForUser(_ context.Context, _, _ int64) (bool, error) {
	return f.usageExists, f.usageErr
}

func (f *fakeCouponRepo) ConditionalIncrementUsage(_ context.Context, _ int64, expectedCurrentUses int) error {
	f.incrementCalls++
	f.lastExpected = expectedCurrentUses
	return f.incrementErr
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeCouponRepo) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func activeCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:            10,
		SalonID:       1,
		Code:          "SUMMER20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		MaxUses:       100,
		CurrentUses:   5,
		Active:        true,
	}
}

func validateRequestFor(subtotal float64) *Request {
	return &Request{
		SalonID:  1,
		UserID:   42,
		Code:     " summer20 ",
		Subtotal: subtotal,
		Action:   ActionValidate,
	}
}

func TestValidateSuccess(t *testing.T) {
	repo := &fakeCouponRepo{coupon: activeCoupon()}
	uc := newTestUseCase(repo)

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, int64(10), result.CouponID)
	assert.Equal(t, "SUMMER20", result.Code)
	assert.Equal(t, 400.0, result.DiscountAmount)
	assert.Equal(t, 1600.0, result.FinalTotal)
	assert.Equal(t, 0, repo.incrementCalls, "validate must not touch the counter")
}

func TestValidateNotFound(t *testing.T) {
	repo := &fakeCouponRepo{getErr: couponRepo.ErrCouponNotFound}
	uc := newTestUseCase(repo)

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, ReasonNotFound, result.Reason)
	assert.False(t, result.Retryable)
}

func TestValidateInactive(t *testing.T) {
	coupon := activeCoupon()
	coupon.Active = false
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon})

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInactive, result.Reason)
}

func TestValidateExpired(t *testing.T) {
	coupon := activeCoupon()
	past := testNow.Add(-time.Hour)
	coupon.ExpiresAt = &past
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon})

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonExpired, result.Reason)
}

func TestValidateLimitReached(t *testing.T) {
	coupon := activeCoupon()
	coupon.MaxUses = 5
	coupon.CurrentUses = 5
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon})

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonLimitReached, result.Reason)
}

func TestValidateUnlimitedIgnoresCounter(t *testing.T) {
	coupon := activeCoupon()
	coupon.MaxUses = domain.UnlimitedUsesSentinel
	coupon.CurrentUses = 5000000
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon})

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateSingleUseAlreadyUsed(t *testing.T) {
	coupon := activeCoupon()
	coupon.MaxUses = 1
	coupon.CurrentUses = 0
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon, usageExists: true})

	result, err := uc.Execute(context.Background(), validateRequestFor(2000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonAlreadyUsed, result.Reason)
}

func TestValidateFixedDiscountCappedAtSubtotal(t *testing.T) {
	coupon := activeCoupon()
	coupon.DiscountType = domain.DiscountFixed
	coupon.DiscountValue = 500
	uc := newTestUseCase(&fakeCouponRepo{coupon: coupon})

	result, err := uc.Execute(context.Background(), validateRequestFor(300))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 300.0, result.DiscountAmount)
	assert.Equal(t, 0.0, result.FinalTotal)
}

func TestApplyIncrementsCounter(t *testing.T) {
	repo := &fakeCouponRepo{coupon: activeCoupon()}
	uc := newTestUseCase(repo)

	req := validateRequestFor(2000)
	req.Action = ActionApply

	result, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, repo.incrementCalls)
	// Инкремент условный: ключом служит прочитанное значение счетчика
	assert.Equal(t, 5, repo.lastExpected)
}

func TestApplyRaceLostIsRetryable(t *testing.T) {
	repo := &fakeCouponRepo{coupon: activeCoupon(), incrementErr: couponRepo.ErrStaleUsage}
	uc := newTestUseCase(repo)

	req := validateRequestFor(2000)
	req.Action = ActionApply

	result, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonApplyRace, result.Reason)
	assert.True(t, result.Retryable)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeCouponRepo{coupon: activeCoupon()})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero salon", func(r *Request) { r.SalonID = 0 }},
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"blank code", func(r *Request) { r.Code = "   " }},
		{"negative subtotal", func(r *Request) { r.Subtotal = -1 }},
		{"unknown action", func(r *Request) { r.Action = "remove" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validateRequestFor(2000)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
