package events

import "context"

// NoopPublisher заглушка публикации событий для окружений без брокера.
// Записывает событие в лог и ничего не отправляет.
type NoopPublisher struct {
	log Logger
}

// NewNoopPublisher создает заглушку публикации событий
func NewNoopPublisher(log Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish логирует событие без отправки
func (p *NoopPublisher) Publish(_ context.Context, eventName string, _ interface{}) error {
	p.log.Info("events: broker disabled, skipping %s", eventName)
	return nil
}
