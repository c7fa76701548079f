package request_refund

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// Request модель запроса на возврат средств
type Request struct {
	UserID    int64
	BookingID string
	Amount    string
	Reason    string
}

// Response модель созданной заявки
type Response struct {
	RefundID    int64
	BookingID   string
	Amount      float64
	Status      domain.RefundStatus
	RequestedAt time.Time
}
