package request_refund

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, appointmentID string) (*domain.Booking, error)
}

// ShopRepository интерфейс репозитория моек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// RefundRepository интерфейс репозитория заявок на возврат
type RefundRepository interface {
	Create(ctx context.Context, req *domain.RefundRequest) (*domain.RefundRequest, error)
	ExistsPendingForBooking(ctx context.Context, bookingID string) (bool, error)
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
