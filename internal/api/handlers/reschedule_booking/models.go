package reschedule_booking

import (
	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-CarwashBooking/internal/usecase/reschedule_booking"
)

const msgRescheduled = "бронирование перенесено"

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	ScheduleDate string `json:"schedule_date" validate:"required"`
	ScheduleTime string `json:"schedule_time" validate:"required"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id"`
	ScheduleDate  string `json:"schedule_date"`
	ScheduleTime  string `json:"schedule_time"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Message:       msgRescheduled,
		AppointmentID: resp.AppointmentID,
		ScheduleDate:  resp.ScheduleDate.Format(domain.DateFormat),
		ScheduleTime:  resp.ScheduleTime.String(),
	}
}
