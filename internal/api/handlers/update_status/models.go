package update_status

import (
	"time"

	updateStatus "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

const msgStatusUpdated = "статус бронирования обновлен"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
	Reason    string `json:"reason,omitempty" validate:"max=500"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Message       string  `json:"message"`
	AppointmentID string  `json:"appointment_id"`
	OldStatus     string  `json:"old_status"`
	NewStatus     string  `json:"new_status"`
	StartedAt     *string `json:"started_at,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	ChangedAt     string  `json:"changed_at"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		Message:       msgStatusUpdated,
		AppointmentID: resp.AppointmentID,
		OldStatus:     resp.OldStatus.String(),
		NewStatus:     resp.NewStatus.String(),
		StartedAt:     formatTime(resp.StartedAt),
		CompletedAt:   formatTime(resp.CompletedAt),
		ChangedAt:     resp.ChangedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
