package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден или неактивен
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDayUnavailable возвращается, когда день не принимает записи:
	// нерабочий день мастера или заблокированная дата
	ErrDayUnavailable = errors.New("create_booking: day is not available for booking")

	// ErrSlotConflict возвращается, когда выбранный слот занят другим
	// бронированием - обнаружено повторной проверкой при подтверждении
	// или нарушением уникальности при вставке
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CouponRejectedError возвращается, когда промокод отклонен при применении.
// Reason показывается пользователю как есть; Retryable означает проигрыш
// гонки применения (contention), а не плохой код.
type CouponRejectedError struct {
	Reason    string
	Retryable bool
}

// Error реализует интерфейс error
func (e *CouponRejectedError) Error() string {
	return fmt.Sprintf("create_booking: coupon rejected: %s", e.Reason)
}
