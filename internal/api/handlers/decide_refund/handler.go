package decide_refund

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	decideRefund "github.com/m04kA/SMC-CarwashBooking/internal/usecase/decide_refund"
)

const (
	msgInvalidRefundID    = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStatus      = "статус должен быть Approved или Rejected"
	msgNotFound           = "заявка на возврат не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyDecided     = "заявка уже рассмотрена"
	msgConcurrentUpdate   = "бронирование было изменено параллельно, повторите запрос"
	msgRefundDecided      = "решение по заявке сохранено"
)

// DecideRefundRequest HTTP request model
type DecideRefundRequest struct {
	Status string `json:"status" validate:"required"`
}

// DecideRefundResponse HTTP response model
type DecideRefundResponse struct {
	Message       string  `json:"message"`
	RefundID      int64   `json:"refund_id"`
	BookingID     string  `json:"booking_id"`
	Status        string  `json:"status"`
	DecidedAt     string  `json:"decided_at"`
	BookingStatus *string `json:"booking_status,omitempty"`
}

type Handler struct {
	useCase DecideRefundUseCase
	logger  Logger
}

func NewHandler(useCase DecideRefundUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/refunds/{id}/status
// Одобрение заявки отменяет бронирование и помечает оплату как возвращенную.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	refundID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /refunds/{id}/status - Invalid refund ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRefundID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /refunds/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DecideRefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /refunds/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &decideRefund.Request{
		RefundID:  refundID,
		Status:    req.Status,
		DecidedBy: ownerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, decideRefund.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, decideRefund.ErrRefundNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, decideRefund.ErrForbidden):
			h.logger.Warn("PATCH /refunds/{id}/status - Access denied: refund_id=%d, user_id=%d", refundID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, decideRefund.ErrRefundAlreadyDecided):
			handlers.RespondConflict(w, msgAlreadyDecided)
		case errors.Is(err, decideRefund.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("PATCH /refunds/{id}/status - Failed to decide refund: refund_id=%d, error=%v", refundID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	resp := &DecideRefundResponse{
		Message:   msgRefundDecided,
		RefundID:  result.RefundID,
		BookingID: result.BookingID,
		Status:    string(result.Status),
		DecidedAt: result.DecidedAt.Format(time.RFC3339),
	}
	if result.BookingStatus != nil {
		status := result.BookingStatus.String()
		resp.BookingStatus = &status
	}

	h.logger.Info("PATCH /refunds/{id}/status - Refund decided: refund_id=%d, status=%s", refundID, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
