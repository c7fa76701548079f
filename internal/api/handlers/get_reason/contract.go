package get_reason

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetLatestReason(ctx context.Context, appointmentID string) (*models.ReasonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
