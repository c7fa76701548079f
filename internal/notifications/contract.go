package notifications

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/integrations/mailer"
)

// ContactProvider ищет получателя уведомления по бронированию
type ContactProvider interface {
	GetContact(ctx context.Context, appointmentID string) (*domain.Contact, error)
}

// Mailer отправляет письмо
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Metrics счётчики доставки уведомлений
type Metrics interface {
	IncNotification(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
