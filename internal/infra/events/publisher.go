// Package events публикация доменных событий в RabbitMQ.
// Каждое имя события - отдельная durable очередь; сообщения персистентные.
// Доставку уведомлений выполняет внешний сервис-подписчик, поэтому ошибки
// публикации не должны откатывать уже зафиксированные изменения в БД -
// вызывающая сторона логирует их и продолжает работу.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher издатель доменных событий поверх одного соединения с брокером
type Publisher struct {
	url string
	log Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]bool
}

// NewPublisher создает издателя и устанавливает соединение с брокером
func NewPublisher(url string, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		log:      log,
		declared: make(map[string]bool),
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

// Publish публикует событие eventName с JSON-сериализованной нагрузкой.
// При закрытом соединении выполняется одна попытка переподключения.
func (p *Publisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload for %s: %v", ErrPublish, eventName, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return err
	}

	if err := p.publishLocked(ctx, eventName, body); err != nil {
		// Соединение могло протухнуть между запросами - переподключаемся
		// и пробуем ещё раз
		p.log.Warn("events: publish %s failed, reconnecting: %v", eventName, err)
		if reconnErr := p.connect(); reconnErr != nil {
			return reconnErr
		}
		if err := p.publishLocked(ctx, eventName, body); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPublish, eventName, err)
		}
	}

	p.log.Info("events: published %s (%d bytes)", eventName, len(body))
	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnection, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnection, err)
	}

	p.conn = conn
	p.channel = channel
	p.declared = make(map[string]bool)
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn == nil || p.conn.IsClosed() {
		return p.connect()
	}
	return nil
}

func (p *Publisher) publishLocked(ctx context.Context, queue string, body []byte) error {
	// Объявление очереди идемпотентно, достаточно одного раза на соединение
	if !p.declared[queue] {
		if _, err := p.channel.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			return err
		}
		p.declared[queue] = true
	}

	return p.channel.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
