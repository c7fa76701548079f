package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	AppointmentID string
	UserID        int64
	ScheduleDate  string // YYYY-MM-DD
	ScheduleTime  string // HH:MM
}

// Response модель ответа после переноса
type Response struct {
	AppointmentID string
	ScheduleDate  time.Time
	ScheduleTime  types.TimeString
}
