package request_refund

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	requestRefund "github.com/m04kA/SMC-CarwashBooking/internal/usecase/request_refund"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidAmount      = "сумма возврата должна быть положительным числом"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAmountExceedsPaid  = "сумма возврата больше оплаченной"
	msgAlreadyPending     = "по бронированию уже есть нерассмотренная заявка"
)

type Handler struct {
	useCase RequestRefundUseCase
	logger  Logger
}

func NewHandler(useCase RequestRefundUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/refunds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /refunds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /refunds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, requestRefund.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)
		case errors.Is(err, requestRefund.ErrValidation):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, []string{err.Error()})
		case errors.Is(err, requestRefund.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, requestRefund.ErrForbidden):
			h.logger.Warn("POST /refunds - Access denied: booking_id=%s, user_id=%d", req.BookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, requestRefund.ErrAmountExceedsPaid):
			handlers.RespondBadRequest(w, msgAmountExceedsPaid)
		case errors.Is(err, requestRefund.ErrRefundAlreadyPending):
			handlers.RespondConflict(w, msgAlreadyPending)
		default:
			h.logger.Error("POST /refunds - Failed to request refund: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("POST /refunds - Refund requested: refund_id=%d, booking_id=%s, user_id=%d",
		result.RefundID, result.BookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
