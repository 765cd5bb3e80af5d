package validate_coupon

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_coupon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_coupon: internal error")
)

// Причины отклонения купона. Показываются пользователю как есть.
const (
	ReasonNotFound     = "промокод не найден"
	ReasonInactive     = "промокод неактивен"
	ReasonExpired      = "срок действия промокода истек"
	ReasonLimitReached = "лимит использований промокода исчерпан"
	ReasonAlreadyUsed  = "вы уже использовали этот промокод"
	ReasonApplyRace    = "не удалось применить промокод, попробуйте еще раз"
)
