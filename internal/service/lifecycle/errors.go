package lifecycle

import "errors"

var (
	// ErrReservationNotFound бронь не существует
	ErrReservationNotFound = errors.New("lifecycle.service: reservation not found")

	// ErrInvalidStatusTransition действие недопустимо из текущего статуса брони
	ErrInvalidStatusTransition = errors.New("lifecycle.service: invalid status transition")

	// ErrAccessDenied пользователь не владеет бронью
	ErrAccessDenied = errors.New("lifecycle.service: access denied")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("lifecycle.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("lifecycle.service: internal error")
)
