package pay_balance

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	recordPayment "github.com/m04kA/SMC-CarwashBooking/internal/usecase/record_payment"
)

const idempotencyKeyHeader = "Idempotency-Key"

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNothingToPay         = "бронирование уже полностью оплачено"
	msgDuplicatePayment     = "платеж с этим ключом идемпотентности уже принят"
	msgNotFound             = "бронирование не найдено"
	msgBookingClosed        = "бронирование не принимает платежи"
	msgConcurrentUpdate     = "бронирование было изменено параллельно, повторите запрос"
	msgBalancePaid          = "остаток оплачен"
)

// PayBalanceRequest HTTP request model
type PayBalanceRequest struct {
	Method     string  `json:"method" validate:"required"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
}

// PayBalanceResponse HTTP response model
type PayBalanceResponse struct {
	Message       string  `json:"message"`
	PaymentID     string  `json:"payment_id"`
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	PaymentStatus string  `json:"payment_status"`
	PaidAmount    float64 `json:"paid_amount"`
	CreatedAt     string  `json:"created_at"`
}

type Handler struct {
	useCase PayBalanceUseCase
	logger  Logger
}

func NewHandler(useCase PayBalanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/payment/{appointmentId}/balance
// Оплачивает весь оставшийся долг по бронированию одним платежом.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathString(r, "appointmentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/payment/{id}/balance - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PayBalanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/payment/{id}/balance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	result, err := h.useCase.ExecuteRemaining(r.Context(), &recordPayment.RemainingRequest{
		AppointmentID:  appointmentID,
		UserID:         userID,
		Method:         req.Method,
		ReceiptURL:     req.ReceiptURL,
		IdempotencyKey: r.Header.Get(idempotencyKeyHeader),
	})
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrValidation):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRequestBody, []string{err.Error()})
		case errors.Is(err, recordPayment.ErrNothingToPay):
			handlers.RespondBadRequest(w, msgNothingToPay)
		case errors.Is(err, recordPayment.ErrDuplicatePayment):
			handlers.RespondConflict(w, msgDuplicatePayment)
		case errors.Is(err, recordPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, recordPayment.ErrBookingClosed):
			handlers.RespondBadRequest(w, msgBookingClosed)
		case errors.Is(err, recordPayment.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("POST /bookings/payment/{id}/balance - Failed to pay balance: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings/payment/{id}/balance - Balance paid: appointment_id=%s, amount=%.2f",
		appointmentID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, &PayBalanceResponse{
		Message:       msgBalancePaid,
		PaymentID:     result.PaymentID,
		AppointmentID: result.AppointmentID,
		Amount:        result.Amount,
		Method:        result.Method,
		PaymentStatus: string(result.PaymentStatus),
		PaidAmount:    result.PaidAmount,
		CreatedAt:     result.CreatedAt.Format(time.RFC3339),
	})
}
