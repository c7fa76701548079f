package get_history

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetHistory(ctx context.Context, appointmentID string, userID int64) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
