package notifications

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarwashBooking/internal/integrations/mailer"
)

const (
	resultSent    = "sent"
	resultDropped = "dropped"
	resultFailed  = "failed"
)

// Consumer получает события из очереди и отправляет письма клиентам.
// Ошибка, возвращённая из Handle, приводит к повторной доставке, поэтому
// события, которые никогда не удастся доставить, подтверждаются и логируются.
type Consumer struct {
	contacts ContactProvider
	mailer   Mailer
	metrics  Metrics
	log      Logger
}

// NewConsumer создает новый экземпляр консьюмера уведомлений
func NewConsumer(contacts ContactProvider, mailer Mailer, metrics Metrics, log Logger) *Consumer {
	return &Consumer{
		contacts: contacts,
		mailer:   mailer,
		metrics:  metrics,
		log:      log,
	}
}

// Handle обрабатывает одно сообщение
func (c *Consumer) Handle(msg *message.Message) error {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.log.Error("Notification %s dropped - malformed payload: %v", msg.UUID, err)
		c.metrics.IncNotification("unknown", resultDropped)
		return nil
	}

	ctx := msg.Context()
	kind := string(event.Kind)

	contact, err := c.contacts.GetContact(ctx, event.AppointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			c.log.Warn("Notification dropped - booking not found: appointment_id=%s", event.AppointmentID)
			c.metrics.IncNotification(kind, resultDropped)
			return nil
		}
		c.metrics.IncNotification(kind, resultFailed)
		return fmt.Errorf("notifications: contact lookup for %s: %w", event.AppointmentID, err)
	}

	subject, body, err := render(event.Kind, templateData{
		CustomerName:  contact.CustomerName,
		ShopName:      contact.ShopName,
		AppointmentID: event.AppointmentID,
		Status:        event.Status,
		Amount:        event.Amount,
		Reason:        event.Reason,
	})
	if err != nil {
		c.log.Error("Notification dropped - appointment_id=%s: %v", event.AppointmentID, err)
		c.metrics.IncNotification(kind, resultDropped)
		return nil
	}

	err = c.mailer.Send(ctx, mailer.Message{
		To:      contact.CustomerEmail,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrRejected) {
			c.log.Warn("Notification rejected by mailer: appointment_id=%s, to=%s: %v", event.AppointmentID, contact.CustomerEmail, err)
			c.metrics.IncNotification(kind, resultDropped)
			return nil
		}
		c.metrics.IncNotification(kind, resultFailed)
		return fmt.Errorf("notifications: send %s for %s: %w", kind, event.AppointmentID, err)
	}

	c.log.Info("Notification sent: kind=%s, appointment_id=%s, to=%s", kind, event.AppointmentID, contact.CustomerEmail)
	c.metrics.IncNotification(kind, resultSent)
	return nil
}
