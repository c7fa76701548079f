package assign_personnel

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	assignPersonnel "github.com/m04kA/SMC-CarwashBooking/internal/usecase/assign_personnel"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgPersonnelNotFound    = "сотрудник не найден"
	msgForbidden            = "доступ запрещен"
	msgBookingClosed        = "бронирование уже закрыто"
	msgDayUnavailable       = "сотрудник не работает в день бронирования"
	msgTimeUnavailable      = "время бронирования вне рабочего окна сотрудника"
	msgConcurrentUpdate     = "бронирование было изменено параллельно, повторите запрос"
	msgPersonnelAssigned    = "сотрудник назначен"
)

// AssignPersonnelRequest HTTP request model
type AssignPersonnelRequest struct {
	PersonnelID int64 `json:"personnel_id" validate:"required,gt=0"`
}

// AssignPersonnelResponse HTTP response model
type AssignPersonnelResponse struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id"`
	PersonnelID   int64  `json:"personnel_id"`
	FullName      string `json:"full_name"`
}

type Handler struct {
	useCase AssignPersonnelUseCase
	logger  Logger
}

func NewHandler(useCase AssignPersonnelUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/bookings/{appointmentId}/personnel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathString(r, "appointmentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/personnel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignPersonnelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/personnel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignPersonnel.Request{
		AppointmentID: appointmentID,
		OwnerID:       ownerID,
		PersonnelID:   req.PersonnelID,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignPersonnel.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, assignPersonnel.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, assignPersonnel.ErrPersonnelNotFound):
			handlers.RespondNotFound(w, msgPersonnelNotFound)
		case errors.Is(err, assignPersonnel.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/personnel - Access denied: appointment_id=%s, user_id=%d", appointmentID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, assignPersonnel.ErrBookingClosed):
			handlers.RespondBadRequest(w, msgBookingClosed)
		case errors.Is(err, assignPersonnel.ErrDayUnavailable):
			handlers.RespondBadRequest(w, msgDayUnavailable)
		case errors.Is(err, assignPersonnel.ErrTimeUnavailable):
			handlers.RespondBadRequest(w, msgTimeUnavailable)
		case errors.Is(err, assignPersonnel.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("PATCH /bookings/{id}/personnel - Failed to assign personnel: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/personnel - Personnel assigned: appointment_id=%s, personnel_id=%d",
		appointmentID, result.PersonnelID)
	handlers.RespondJSON(w, http.StatusOK, &AssignPersonnelResponse{
		Message:       msgPersonnelAssigned,
		AppointmentID: result.AppointmentID,
		PersonnelID:   result.PersonnelID,
		FullName:      result.FullName,
	})
}
