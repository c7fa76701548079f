package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Dispatcher публикует события уведомлений в очередь.
// Отправка письма выполняется асинхронно консьюмером.
type Dispatcher struct {
	publisher message.Publisher
	topic     string
	log       Logger
}

// NewDispatcher создает новый экземпляр диспетчера уведомлений
func NewDispatcher(publisher message.Publisher, topic string, log Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		topic:     topic,
		log:       log,
	}
}

// Notify публикует событие
func (d *Dispatcher) Notify(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Notify - marshal event: %v", ErrPublish, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("kind", string(event.Kind))

	if err := d.publisher.Publish(d.topic, msg); err != nil {
		return fmt.Errorf("%w: Notify - publish to %s: %v", ErrPublish, d.topic, err)
	}

	d.log.Info("Notification queued: kind=%s, appointment_id=%s, status=%s", event.Kind, event.AppointmentID, event.Status)
	return nil
}
