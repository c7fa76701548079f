package record_payment

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// Request модель запроса на приём платежа
type Request struct {
	AppointmentID string
	UserID        int64
	Amount        string // Сумма в исходном виде, разбирается usecase
	Method        string
	PaymentStatus string // Необязательное явное значение: Partial или Paid
	ReceiptURL    *string

	IdempotencyKey string
}

// RemainingRequest модель запроса на оплату остатка
type RemainingRequest struct {
	AppointmentID  string
	UserID         int64
	Method         string
	ReceiptURL     *string
	IdempotencyKey string
}

// Response модель ответа после приёма платежа
type Response struct {
	PaymentID     string
	AppointmentID string
	Amount        float64
	Method        string
	PaymentStatus domain.PaymentStatus
	PaidAmount    float64 // Сумма всех платежей после текущего
	Remaining     float64
	CreatedAt     time.Time
}

// paymentInput разобранный запрос; amount == nil означает оплату остатка
type paymentInput struct {
	appointmentID  string
	userID         int64
	amount         *float64
	method         string
	override       *domain.PaymentStatus
	receiptURL     *string
	idempotencyKey string
}
