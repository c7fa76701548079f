package bookings

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
}

// HistoryRepository интерфейс журнала смен статусов
type HistoryRepository interface {
	GetLatestByAppointment(ctx context.Context, appointmentID string) (*domain.StatusHistory, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.StatusHistory, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.Payment, error)
}

// ShopRepository интерфейс репозитория моек
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// PersonnelRepository интерфейс репозитория сотрудников
type PersonnelRepository interface {
	ListByShop(ctx context.Context, shopID int64) ([]*domain.Personnel, error)
}

// RefundRepository интерфейс репозитория заявок на возврат
type RefundRepository interface {
	ListByOwner(ctx context.Context, ownerID int64, status *domain.RefundStatus) ([]*domain.RefundRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
