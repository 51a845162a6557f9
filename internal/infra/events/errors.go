package events

import "errors"

var (
	// ErrConnection возвращается при ошибках соединения с брокером
	ErrConnection = errors.New("events.publisher: broker connection error")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events.publisher: failed to publish event")
)
