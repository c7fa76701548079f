package assign_personnel

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, appointmentID string) (*domain.Booking, error)
	Update(ctx context.Context, appointmentID string, expectedVersion int64, upd domain.BookingUpdate) (int64, error)
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
