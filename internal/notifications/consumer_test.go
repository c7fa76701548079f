package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarwashBooking/internal/integrations/mailer"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeContacts struct {
	contact *domain.Contact
	err     error
}

func (f fakeContacts) GetContact(ctx context.Context, appointmentID string) (*domain.Contact, error) {
	return f.contact, f.err
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fakeMetrics) IncNotification(kind, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[kind+"/"+result]++
}

var contact = &domain.Contact{
	AppointmentID: "a-1",
	CustomerName:  "Juan",
	CustomerEmail: "juan@example.com",
	ShopName:      "Sparkle Wash",
}

func eventMessage(t *testing.T, event Event) *message.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestConsumer_Handle_StatusChanged(t *testing.T) {
	m := &fakeMailer{}
	metrics := &fakeMetrics{}
	c := NewConsumer(fakeContacts{contact: contact}, m, metrics, nopLogger{})

	err := c.Handle(eventMessage(t, Event{Kind: KindStatusChanged, AppointmentID: "a-1", Status: "Declined", Reason: "No slots left"}))
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "juan@example.com", sent[0].To)
	assert.Equal(t, "Your booking at Sparkle Wash is declined", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Reason: No slots left")
	assert.Equal(t, 1, metrics.counts["status_changed/sent"])
}

func TestConsumer_Handle_PaymentRecorded(t *testing.T) {
	m := &fakeMailer{}
	c := NewConsumer(fakeContacts{contact: contact}, m, &fakeMetrics{}, nopLogger{})

	err := c.Handle(eventMessage(t, Event{Kind: KindPaymentRecorded, AppointmentID: "a-1", Status: "Partial", Amount: 200}))
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "payment of 200.00")
	assert.Contains(t, sent[0].Body, "Payment status: Partial.")
}

func TestConsumer_Handle_DropsUndeliverable(t *testing.T) {
	tests := []struct {
		name     string
		contacts fakeContacts
		mailErr  error
		msg      func(t *testing.T) *message.Message
	}{
		{
			name:     "malformed payload",
			contacts: fakeContacts{contact: contact},
			msg: func(t *testing.T) *message.Message {
				return message.NewMessage(watermill.NewUUID(), []byte("{not json"))
			},
		},
		{
			name:     "booking gone",
			contacts: fakeContacts{err: bookingRepo.ErrBookingNotFound},
			msg: func(t *testing.T) *message.Message {
				return eventMessage(t, Event{Kind: KindStatusChanged, AppointmentID: "a-1", Status: "Confirmed"})
			},
		},
		{
			name:     "unknown kind",
			contacts: fakeContacts{contact: contact},
			msg: func(t *testing.T) *message.Message {
				return eventMessage(t, Event{Kind: "sms", AppointmentID: "a-1"})
			},
		},
		{
			name:     "rejected by mailer",
			contacts: fakeContacts{contact: contact},
			mailErr:  fmt.Errorf("%w: status 422", mailer.ErrRejected),
			msg: func(t *testing.T) *message.Message {
				return eventMessage(t, Event{Kind: KindStatusChanged, AppointmentID: "a-1", Status: "Confirmed"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConsumer(tt.contacts, &fakeMailer{err: tt.mailErr}, &fakeMetrics{}, nopLogger{})
			assert.NoError(t, c.Handle(tt.msg(t)))
		})
	}
}

func TestConsumer_Handle_RetriesTransientFailures(t *testing.T) {
	msg := func() *message.Message {
		return eventMessage(t, Event{Kind: KindStatusChanged, AppointmentID: "a-1", Status: "Confirmed"})
	}

	c := NewConsumer(fakeContacts{err: errors.New("db down")}, &fakeMailer{}, &fakeMetrics{}, nopLogger{})
	assert.Error(t, c.Handle(msg()))

	c = NewConsumer(fakeContacts{contact: contact}, &fakeMailer{err: mailer.ErrUnavailable}, &fakeMetrics{}, nopLogger{})
	assert.ErrorIs(t, c.Handle(msg()), mailer.ErrUnavailable)
}

func TestDispatcher_DeliversThroughRouter(t *testing.T) {
	logger := watermill.NopLogger{}
	cfg := TransportConfig{
		Transport:   TransportGoChannel,
		Topic:       "booking.notifications",
		PoisonTopic: "booking.notifications.poison",
	}

	ps, err := NewPubSub(cfg, logger)
	require.NoError(t, err)

	m := &fakeMailer{}
	router, err := NewRouter(cfg, ps, NewConsumer(fakeContacts{contact: contact}, m, &fakeMetrics{}, nopLogger{}), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	defer router.Close()

	d := NewDispatcher(ps.Publisher, cfg.Topic, nopLogger{})
	require.NoError(t, d.Notify(ctx, Event{Kind: KindStatusChanged, AppointmentID: "a-1", Status: "Confirmed"}))

	assert.Eventually(t, func() bool { return len(m.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Your booking at Sparkle Wash is confirmed", m.Sent()[0].Subject)
}
