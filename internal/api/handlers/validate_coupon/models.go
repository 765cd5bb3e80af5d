package validate_coupon

import (
	validateCoupon "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
)

// ValidateCouponRequest HTTP request model
type ValidateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// ValidateCouponResponse HTTP response model
type ValidateCouponResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"` // Причина отклонения, для показа пользователю

	// Заполняется при valid=true
	Code           string  `json:"code,omitempty"`
	DiscountType   string  `json:"discountType,omitempty"`
	DiscountValue  float64 `json:"discountValue,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
	FinalTotal     float64 `json:"finalTotal,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Через API доступна только проверка без побочных эффектов; применение
// выполняется исключительно при создании бронирования.
func (r *ValidateCouponRequest) ToUseCaseRequest(salonID, userID int64) *validateCoupon.Request {
	return &validateCoupon.Request{
		SalonID:  salonID,
		UserID:   userID,
		Code:     r.Code,
		Subtotal: r.Subtotal,
		Action:   validateCoupon.ActionValidate,
	}
}

// FromUseCaseResult конвертирует результат use case в HTTP response
func FromUseCaseResult(result *validateCoupon.Result) *ValidateCouponResponse {
	if !result.Valid {
		return &ValidateCouponResponse{
			Valid:  false,
			Reason: result.Reason,
		}
	}

	return &ValidateCouponResponse{
		Valid:          true,
		Code:           result.Code,
		DiscountType:   string(result.DiscountType),
		DiscountValue:  result.DiscountValue,
		DiscountAmount: result.DiscountAmount,
		FinalTotal:     result.FinalTotal,
	}
}
