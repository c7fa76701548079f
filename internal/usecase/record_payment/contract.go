package record_payment

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, appointmentID string) (*domain.Booking, error)
	Update(ctx context.Context, appointmentID string, expectedVersion int64, upd domain.BookingUpdate) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	SumByAppointment(ctx context.Context, appointmentID string) (float64, error)
}

// IdempotencyGuard защищает от повторной отправки одного и того же платежа
type IdempotencyGuard interface {
	Acquire(ctx context.Context, scope, key string) error
	Release(ctx context.Context, scope, key string) error
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	Notify(ctx context.Context, event notifications.Event) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObservePayment(paymentStatus string, amount float64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
