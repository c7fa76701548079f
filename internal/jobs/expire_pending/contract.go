package expire_pending

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

// BookingFinder ищет бронирования, зависшие в Pending
type BookingFinder interface {
	GetStalePending(ctx context.Context, before time.Time, limit uint64) ([]string, error)
}

// StatusUpdater смена статуса через общую логику переходов
type StatusUpdater interface {
	Execute(ctx context.Context, req *update_status.Request) (*update_status.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
