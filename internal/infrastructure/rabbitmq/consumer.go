package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// Consumer bildirim kuyruğunu okur ve her olayı handler'a iletir.
type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
	log        *logger.Logger
}

// NewConsumer bağlanır, prefetch ayarlar ve tüketmeye başlar.
func NewConsumer(uri, queue string, prefetch int, log *logger.Logger) (*Consumer, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	if err := declareQueue(ch, queue); err != nil {
		closeAll()
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		closeAll()
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}
	deliveries, err := ch.Consume(queue, "ws-consumer", false, false, false, false, nil)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	log.Info().Str("queue", queue).Msg("rabbitmq tüketici başladı")
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries, log: log}, nil
}

// Run ctx iptal edilene ya da teslimat kanalı kapanana kadar olayları işler.
// Çözülemeyen mesajlar yeniden kuyruğa alınmadan reddedilir.
func (c *Consumer) Run(ctx context.Context, handle func(dto.NotificationEvent)) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-c.deliveries:
			if !ok {
				c.log.Warn().Msg("rabbitmq teslimat kanalı kapandı")
				return
			}
			var ev dto.NotificationEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil || ev.UserID == "" {
				c.log.Warn().Err(err).Str("message_id", d.MessageId).Msg("geçersiz bildirim mesajı")
				_ = d.Nack(false, false)
				continue
			}
			handle(ev)
			_ = d.Ack(false)
		}
	}
}

// Close kanal ve bağlantıyı kapatır.
func (c *Consumer) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}
