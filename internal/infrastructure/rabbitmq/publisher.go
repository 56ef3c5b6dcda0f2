// Package rabbitmq bildirim olaylarını RabbitMQ kuyruğuna yayımlar ve tüketir.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

const publishTimeout = 2 * time.Second

// Publisher bildirimleri kalıcı (durable) kuyruğa JSON olarak yazar.
// ports.NotificationPublisher'ı uygular.
type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher bağlanır ve kuyruğun var olduğunu garanti eder.
func NewPublisher(uri, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// Publish bildirimi NotificationEvent olarak kuyruğa yazar.
func (p *Publisher) Publish(ctx context.Context, n *entity.Notification) error {
	body, err := json.Marshal(ToEvent(n))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(
		ctx,
		"",      // varsayılan exchange
		p.queue, // routing key = kuyruk adı
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    n.ID,
			Body:         body,
			Headers:      amqp.Table{"company_id": n.CompanyID, "user_id": n.UserID},
		},
	)
}

// Close kanal ve bağlantıyı kapatır.
func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}
	return errors.Join(errCh, errConn)
}

// ToEvent bildirimi kuyruk mesajına çevirir.
func ToEvent(n *entity.Notification) dto.NotificationEvent {
	return dto.NotificationEvent{
		ID:        n.ID,
		CompanyID: n.CompanyID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", queue, err)
	}
	return nil
}
