package inventory

import "errors"

var (
	// ErrUnauthorized возвращается при ошибке аутентификации у провайдера
	ErrUnauthorized = errors.New("inventory client: unauthorized")

	// ErrProductNotFound возвращается, когда продукт неизвестен провайдеру
	ErrProductNotFound = errors.New("inventory client: product not found")

	// ErrUnavailable возвращается при сетевых ошибках, таймаутах и 5xx
	ErrUnavailable = errors.New("inventory client: provider unavailable")

	// ErrRateLimited возвращается, когда провайдер или локальный лимитер отклонили запрос
	ErrRateLimited = errors.New("inventory client: rate limited")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("inventory client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inventory client: internal error")
)
