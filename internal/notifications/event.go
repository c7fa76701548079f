package notifications

import "time"

// Kind тип уведомления
type Kind string

const (
	KindStatusChanged   Kind = "status_changed"
	KindPaymentRecorded Kind = "payment_recorded"
	KindRefundDecided   Kind = "refund_decided"
)

// Event событие, по которому клиенту отправляется письмо.
// Status содержит новый статус бронирования, статус платежа или решение по возврату в зависимости от Kind.
type Event struct {
	Kind          Kind      `json:"kind"`
	AppointmentID string    `json:"appointment_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
