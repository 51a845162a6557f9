package create_reservation

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не настроена в гараже или недоступна
	ErrServiceNotFound = errors.New("create_reservation: service not offered by garage")

	// ErrSlotNotAvailable возвращается, когда все места слота заняты
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда слот в прошлом
	ErrInvalidTimeSlot = errors.New("create_reservation: time slot must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
