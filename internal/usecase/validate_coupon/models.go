package validate_coupon

import "github.com/salonhub/SalonBookingService/internal/domain"

// Action действие над купоном
type Action string

const (
	// ActionValidate только проверка, без побочных эффектов.
	// Используется для мгновенной обратной связи при вводе кода.
	ActionValidate Action = "validate"

	// ActionApply проверка плюс атомарный инкремент счетчика использований.
	// Единственный вызов с побочным эффектом; выполняется при финальном
	// подтверждении бронирования.
	ActionApply Action = "apply"
)

// Request модель запроса на валидацию/применение промокода
type Request struct {
	SalonID  int64   // ID салона
	UserID   int64   // ID пользователя
	Code     string  // Введенный код (нормализуется внутри)
	Subtotal float64 // Сумма заказа до скидки
	Action   Action  // validate или apply
}

// Result результат валидации промокода
type Result struct {
	Valid     bool    // Купон применим
	Reason    string  // Причина отклонения (для Valid=false), показывается пользователю
	Retryable bool    // Отклонение из-за гонки применения - можно повторить

	// Заполняется при Valid=true
	CouponID       int64
	Code           string
	DiscountType   domain.DiscountType
	DiscountValue  float64
	DiscountAmount float64
	FinalTotal     float64
}

// invalid возвращает результат отклонения с причиной
func invalid(reason string) *Result {
	return &Result{Valid: false, Reason: reason}
}
