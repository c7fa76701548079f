package get_reason

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/reason/{appointmentId}
// Возвращает причину последней смены статуса, пустую если истории нет.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathString(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /bookings/reason/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	reason, err := h.service.GetLatestReason(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/reason/{id} - Failed to get reason: appointment_id=%s, error=%v", appointmentID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reason)
}
