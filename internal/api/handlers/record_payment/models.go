package record_payment

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"

	recordPayment "github.com/m04kA/SMC-CarwashBooking/internal/usecase/record_payment"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности платежа
const IdempotencyKeyHeader = "Idempotency-Key"

const msgPaymentRecorded = "платеж принят"

// PaymentRequest HTTP request model.
// Amount принимается и числом, и строкой: разбор и проверку выполняет use case.
type PaymentRequest struct {
	Amount        json.RawMessage `json:"amount"`
	Method        string          `json:"method" validate:"required"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	ReceiptURL    *string         `json:"receipt_url,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	Message       string  `json:"message"`
	PaymentID     string  `json:"payment_id"`
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	PaymentStatus string  `json:"payment_status"`
	PaidAmount    float64 `json:"paid_amount"`
	Remaining     float64 `json:"remaining"`
	CreatedAt     string  `json:"created_at"`
}

// AmountText возвращает сумму в исходном текстовом виде
func (r *PaymentRequest) AmountText() string {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	return string(raw)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PaymentRequest) ToUseCaseRequest(appointmentID string, userID int64, idempotencyKey string) *recordPayment.Request {
	return &recordPayment.Request{
		AppointmentID:  appointmentID,
		UserID:         userID,
		Amount:         r.AmountText(),
		Method:         r.Method,
		PaymentStatus:  r.PaymentStatus,
		ReceiptURL:     r.ReceiptURL,
		IdempotencyKey: idempotencyKey,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		Message:       msgPaymentRecorded,
		PaymentID:     resp.PaymentID,
		AppointmentID: resp.AppointmentID,
		Amount:        resp.Amount,
		Method:        resp.Method,
		PaymentStatus: string(resp.PaymentStatus),
		PaidAmount:    resp.PaidAmount,
		Remaining:     resp.Remaining,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
