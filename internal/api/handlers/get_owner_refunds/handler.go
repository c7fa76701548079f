package get_owner_refunds

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус заявки, ожидается Pending, Approved или Rejected"
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

// Handle GET /api/refunds
// Заявки на возврат по мойкам вызывающего владельца, query param status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /refunds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetOwnerRefunds(r.Context(), ownerID, handlers.QueryString(r, "status"))
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /refunds - Failed to get refunds: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	h.logger.Info("GET /refunds - Refunds retrieved: owner_id=%d, count=%d", ownerID, len(result.Refunds))
	handlers.RespondJSON(w, http.StatusOK, result)
}
