package availability

import "errors"

var (
	// ErrOfferingNotFound возвращается, когда услуга не настроена в гараже,
	// отключена или её конфигурация невалидна
	ErrOfferingNotFound = errors.New("availability: service is not available at this garage")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
