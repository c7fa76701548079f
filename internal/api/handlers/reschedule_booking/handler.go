package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-CarwashBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidSchedule      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgScheduleInPast       = "нельзя перенести бронирование на прошедшие дату или время"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgBookingClosed        = "бронирование нельзя перенести в текущем статусе"
	msgDayUnavailable       = "сотрудник не работает в выбранный день"
	msgTimeUnavailable      = "выбранное время вне рабочего окна сотрудника"
	msgConcurrentUpdate     = "бронирование было изменено параллельно, повторите запрос"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/bookings/reschedule/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathString(r, "appointmentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/reschedule/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/reschedule/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		ScheduleDate:  req.ScheduleDate,
		ScheduleTime:  req.ScheduleTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidSchedule)
		case errors.Is(err, rescheduleBooking.ErrScheduleInPast):
			handlers.RespondBadRequest(w, msgScheduleInPast)
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/reschedule/{id} - Access denied: appointment_id=%s, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, rescheduleBooking.ErrBookingClosed):
			handlers.RespondBadRequest(w, msgBookingClosed)
		case errors.Is(err, rescheduleBooking.ErrDayUnavailable):
			handlers.RespondBadRequest(w, msgDayUnavailable)
		case errors.Is(err, rescheduleBooking.ErrTimeUnavailable):
			handlers.RespondBadRequest(w, msgTimeUnavailable)
		case errors.Is(err, rescheduleBooking.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("PATCH /bookings/reschedule/{id} - Failed to reschedule: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/reschedule/{id} - Booking rescheduled: appointment_id=%s, date=%s, time=%s",
		appointmentID, req.ScheduleDate, req.ScheduleTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
