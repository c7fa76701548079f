package update_status

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	AppointmentID string
	NewStatus     string // Каноническое или устаревшее написание статуса ("On Going", "Done")
	Reason        string
	ChangedBy     string // Кто меняет статус, по умолчанию "system"

	// OwnerID если задан, бронирование должно принадлежать этому пользователю (отмена клиентом)
	OwnerID *int64
}

// Response модель ответа после смены статуса
type Response struct {
	AppointmentID string
	OldStatus     domain.BookingStatus
	NewStatus     domain.BookingStatus
	StartedAt     *time.Time
	CompletedAt   *time.Time
	ChangedAt     time.Time
}
