package domain

import (
	"fmt"
	"strings"
)

// BookingStatus is the canonical booking status
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusConfirmed  BookingStatus = "Confirmed"
	StatusInProgress BookingStatus = "In Progress"
	StatusCompleted  BookingStatus = "Completed"
	StatusDeclined   BookingStatus = "Declined"
	StatusCancelled  BookingStatus = "Cancelled"
)

// legacyStatuses maps every accepted spelling (lowercased, single-spaced) to its canonical status
var legacyStatuses = map[string]BookingStatus{
	"pending":     StatusPending,
	"confirmed":   StatusConfirmed,
	"on going":    StatusInProgress,
	"ongoing":     StatusInProgress,
	"in progress": StatusInProgress,
	"in_progress": StatusInProgress,
	"halfway":     StatusInProgress,
	"completed":   StatusCompleted,
	"done":        StatusCompleted,
	"declined":    StatusDeclined,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
}

// transitions lists the allowed targets for every status besides itself
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ActiveStatuses are the non-terminal statuses; a customer may hold at most one such booking
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses are the terminal statuses
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusDeclined,
	StatusCancelled,
}

// ParseBookingStatus maps a client or legacy value to the canonical status.
// Matching ignores case and repeated whitespace.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	key := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	status, ok := legacyStatuses[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// NormalizeStatus returns the canonical form of a stored value, or the value unchanged if it is unknown
func NormalizeStatus(raw string) BookingStatus {
	if status, err := ParseBookingStatus(raw); err == nil {
		return status
	}
	return BookingStatus(raw)
}

func (s BookingStatus) String() string {
	return string(s)
}

// IsValid returns true for the six canonical statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for Completed, Declined and Cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDeclined || s == StatusCancelled
}

// NotifiesCustomer returns true for statuses the customer is told about by e-mail
func (s BookingStatus) NotifiesCustomer() bool {
	return s == StatusConfirmed || s == StatusDeclined
}

// CheckTransition reports whether from -> to is allowed.
// Re-entering the same status is always allowed. With strict=false any jump is accepted.
func CheckTransition(from, to BookingStatus, strict bool) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if from == to || !strict {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
