package schedule

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда у салона нет настроек
	ErrSettingsNotFound = errors.New("work settings not found")

	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrBlockedDateNotFound возвращается при снятии несуществующей блокировки
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
