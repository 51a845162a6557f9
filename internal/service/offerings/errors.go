package offerings

import "errors"

var (
	// ErrServiceNotFound услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("offerings.service: catalog service not found")

	// ErrInvalidPricingConfig конфигурация цены нарушает инварианты режима
	ErrInvalidPricingConfig = errors.New("offerings.service: invalid pricing configuration")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("offerings.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("offerings.service: internal error")
)
