package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveByUserID(ctx context.Context, userID int64) (int, error)
}

// HistoryRepository интерфейс журнала смен статусов
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.StatusHistory) (*domain.StatusHistory, error)
}

// ShopRepository интерфейс репозитория моек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// PersonnelRepository интерфейс репозитория сотрудников
type PersonnelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Personnel, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
