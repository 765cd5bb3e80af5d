package coupons

import "errors"

var (
	// ErrDuplicateCode возвращается при создании купона с уже занятым кодом
	ErrDuplicateCode = errors.New("coupon code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
