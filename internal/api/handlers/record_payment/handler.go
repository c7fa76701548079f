package record_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	recordPayment "github.com/m04kA/SMC-CarwashBooking/internal/usecase/record_payment"
)

const (
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgValidationFailed     = "ошибка валидации платежа"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidAmount        = "сумма должна быть положительным числом"
	msgDuplicatePayment     = "платеж с этим ключом идемпотентности уже принят"
	msgNotFound             = "бронирование не найдено"
	msgBookingClosed        = "бронирование не принимает платежи"
	msgAmountExceeds        = "сумма превышает остаток к оплате"
	msgConcurrentUpdate     = "бронирование было изменено параллельно, повторите запрос"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST|PATCH /api/bookings/payment/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /bookings/payment/{id}"

	appointmentID, err := handlers.PathString(r, "appointmentId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}
	if req.AmountText() == "" {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, []string{"Amount: required"})
		return
	}

	idempotencyKey := r.Header.Get(IdempotencyKeyHeader)
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, userID, idempotencyKey))
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrInvalidAmount):
			h.logger.Warn("%s - Invalid amount: appointment_id=%s, amount=%s", route, appointmentID, req.AmountText())
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, recordPayment.ErrValidation):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, []string{err.Error()})

		case errors.Is(err, recordPayment.ErrDuplicatePayment):
			h.logger.Warn("%s - Duplicate submission: appointment_id=%s, key=%s", route, appointmentID, idempotencyKey)
			handlers.RespondConflict(w, msgDuplicatePayment)

		case errors.Is(err, recordPayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recordPayment.ErrBookingClosed):
			handlers.RespondBadRequest(w, msgBookingClosed)

		case errors.Is(err, recordPayment.ErrAmountExceedsBalance):
			handlers.RespondBadRequest(w, msgAmountExceeds)

		case errors.Is(err, recordPayment.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("%s - Failed to record payment: appointment_id=%s, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("%s - Payment recorded: appointment_id=%s, payment_id=%s, status=%s",
		route, appointmentID, result.PaymentID, result.PaymentStatus)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
