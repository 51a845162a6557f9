package reservations

import "errors"

var (
	// ErrReservationNotFound бронь не существует
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrAccessDenied пользователь не имеет доступа к брони
	ErrAccessDenied = errors.New("reservations.service: access denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("reservations.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
