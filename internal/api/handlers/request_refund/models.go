package request_refund

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"

	requestRefund "github.com/m04kA/SMC-CarwashBooking/internal/usecase/request_refund"
)

const msgRefundRequested = "заявка на возврат создана"

// RefundRequest HTTP request model
type RefundRequest struct {
	BookingID string          `json:"booking_id" validate:"required"`
	Amount    json.RawMessage `json:"amount" validate:"required"`
	Reason    string          `json:"reason" validate:"required,max=1000"`
}

// RefundResponse HTTP response model
type RefundResponse struct {
	Message     string  `json:"message"`
	RefundID    int64   `json:"refund_id"`
	BookingID   string  `json:"booking_id"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	RequestedAt string  `json:"requested_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RefundRequest) ToUseCaseRequest(userID int64) *requestRefund.Request {
	amount := string(bytes.TrimSpace(r.Amount))
	var s string
	if err := json.Unmarshal(r.Amount, &s); err == nil {
		amount = s
	}

	return &requestRefund.Request{
		UserID:    userID,
		BookingID: r.BookingID,
		Amount:    amount,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestRefund.Response) *RefundResponse {
	return &RefundResponse{
		Message:     msgRefundRequested,
		RefundID:    resp.RefundID,
		BookingID:   resp.BookingID,
		Amount:      resp.Amount,
		Status:      string(resp.Status),
		RequestedAt: resp.RequestedAt.Format(time.RFC3339),
	}
}
