package domain

import "time"

// Actors recorded in status history
const (
	ChangedBySystem = "system"
	ChangedByRefund = "refund"
)

// ChangedByCustomer returns the history actor for a customer-initiated change
func ChangedByCustomer(userID int64) string {
	return "customer:" + itoa(userID)
}

// ChangedByOwner returns the history actor for a shop owner change
func ChangedByOwner(userID int64) string {
	return "owner:" + itoa(userID)
}

// StatusHistory is one append-only audit row of a status change
type StatusHistory struct {
	ID            int64
	AppointmentID string
	OldStatus     BookingStatus // пустой для первой записи при создании
	NewStatus     BookingStatus
	ChangedBy     string
	Reason        string
	ChangedAt     time.Time
}
