package get_payments

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetPayments(ctx context.Context, appointmentID string, userID int64) (*models.PaymentsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
