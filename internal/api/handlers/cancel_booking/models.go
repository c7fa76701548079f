package cancel_booking

import (
	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

const msgBookingCancelled = "бронирование отменено"

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос смены статуса от имени клиента
func (r *CancelBookingRequest) ToUseCaseRequest(appointmentID string, userID int64) *updateStatus.Request {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &updateStatus.Request{
		AppointmentID: appointmentID,
		NewStatus:     domain.StatusCancelled.String(),
		Reason:        reason,
		ChangedBy:     domain.ChangedByCustomer(userID),
		OwnerID:       &userID,
	}
}
