package get_owner_refunds

import (
	"context"

	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetOwnerRefunds(ctx context.Context, ownerID int64, status *string) (*models.RefundListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
