package validate_coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SalonBookingService/internal/domain"
	couponRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/coupon"
)

// UseCase use case валидации и применения промокодов.
//
// Один и тот же вызов обслуживает два режима: ActionValidate - чистая
// проверка без побочных эффектов (безопасно вызывать сколько угодно раз),
// ActionApply - проверка плюс атомарный инкремент счетчика использований
// с оптимистичной блокировкой. Проигравший гонку применения получает
// Retryable-отказ и обязан повторить весь цикл заново: скидка, посчитанная
// до гонки, могла устареть.
type UseCase struct {
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(couponRepo CouponRepository, logger Logger) *UseCase {
	return &UseCase{
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет валидацию (и опционально применение) промокода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateCoupon: validation failed: %v", err)
		return nil, err
	}

	code := domain.NormalizeCouponCode(req.Code)
	now := uc.timeProvider.Now()

	uc.logger.Info("ValidateCoupon: salon=%d, user=%d, code=%s, subtotal=%.2f, action=%s",
		req.SalonID, req.UserID, code, req.Subtotal, req.Action)

	// 1. Поиск купона по нормализованному коду
	coupon, err := uc.couponRepo.GetByCode(ctx, req.SalonID, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Info("ValidateCoupon: code=%s not found in salon=%d", code, req.SalonID)
			return invalid(ReasonNotFound), nil
		}
		uc.logger.Error("ValidateCoupon: failed to get coupon code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	// 2. Флаг активности
	if !coupon.Active {
		uc.logger.Info("ValidateCoupon: coupon id=%d is inactive", coupon.ID)
		return invalid(ReasonInactive), nil
	}

	// 3. Срок действия
	if coupon.IsExpired(now) {
		uc.logger.Info("ValidateCoupon: coupon id=%d expired at %s", coupon.ID, coupon.ExpiresAt)
		return invalid(ReasonExpired), nil
	}

	// 4. Лимит использований (для ограниченных купонов)
	if coupon.IsExhausted() {
		uc.logger.Info("ValidateCoupon: coupon id=%d usage limit reached (%d/%d)",
			coupon.ID, coupon.CurrentUses, coupon.MaxUses)
		return invalid(ReasonLimitReached), nil
	}

	// 5. Одноразовые купоны: не более одного использования на пользователя
	if coupon.IsSingleUse() {
		used, err := uc.couponRepo.UsageExistsForUser(ctx, coupon.ID, req.UserID)
		if err != nil {
			uc.logger.Error("ValidateCoupon: failed to check usage for coupon id=%d, user=%d: %v",
				coupon.ID, req.UserID, err)
			return nil, fmt.Errorf("%w: failed to check coupon usage: %v", ErrInternal, err)
		}
		if used {
			uc.logger.Info("ValidateCoupon: coupon id=%d already used by user=%d", coupon.ID, req.UserID)
			return invalid(ReasonAlreadyUsed), nil
		}
	}

	// 6. Расчет скидки
	discountAmount := coupon.Discount(req.Subtotal)
	finalTotal := req.Subtotal - discountAmount
	if finalTotal < 0 {
		finalTotal = 0
	}

	// 7. Применение: условный инкремент, ключ - прочитанное значение счетчика.
	// Проигрыш гонки - не "плохой код", а contention: логируется отдельно
	// и помечается как повторяемый.
	if req.Action == ActionApply {
		err := uc.couponRepo.ConditionalIncrementUsage(ctx, coupon.ID, coupon.CurrentUses)
		if err != nil {
			if errors.Is(err, couponRepo.ErrStaleUsage) {
				uc.logger.Warn("ValidateCoupon: apply race lost for coupon id=%d (expected current_uses=%d)",
					coupon.ID, coupon.CurrentUses)
				result := invalid(ReasonApplyRace)
				result.Retryable = true
				return result, nil
			}
			uc.logger.Error("ValidateCoupon: failed to increment usage for coupon id=%d: %v", coupon.ID, err)
			return nil, fmt.Errorf("%w: failed to increment coupon usage: %v", ErrInternal, err)
		}
		uc.logger.Info("ValidateCoupon: applied coupon id=%d, uses %d -> %d",
			coupon.ID, coupon.CurrentUses, coupon.CurrentUses+1)
	}

	return &Result{
		Valid:          true,
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discountAmount,
		FinalTotal:     finalTotal,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if domain.NormalizeCouponCode(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	if req.Subtotal < 0 {
		return fmt.Errorf("%w: subtotal must not be negative", ErrInvalidInput)
	}

	if req.Action != ActionValidate && req.Action != ActionApply {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	return nil
}
