package decide_refund

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

// RefundRepository интерфейс репозитория заявок на возврат
type RefundRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.RefundRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RefundStatus, decidedAt time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, appointmentID string) (*domain.Booking, error)
	Update(ctx context.Context, appointmentID string, expectedVersion int64, upd domain.BookingUpdate) (int64, error)
}

// HistoryRepository интерфейс журнала смен статусов
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.StatusHistory) (*domain.StatusHistory, error)
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	Notify(ctx context.Context, event notifications.Event) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncRefundDecision(decision string)
	IncStatusTransition(from, to string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
