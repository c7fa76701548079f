package domain

import (
	"fmt"
	"strings"
	"time"
)

// RefundStatus is the decision state of a refund request
type RefundStatus string

const (
	RefundPending  RefundStatus = "Pending"
	RefundApproved RefundStatus = "Approved"
	RefundRejected RefundStatus = "Rejected"
)

// RefundRequest is a customer's request to get money back for a booking
type RefundRequest struct {
	ID          int64
	Customer    int64
	Amount      float64
	Reason      string
	BookingID   string
	OwnerID     int64
	Status      RefundStatus
	RequestedAt time.Time
	DecidedAt   *time.Time
}

// IsDecided returns true once the refund was approved or rejected
func (r *RefundRequest) IsDecided() bool {
	return r.Status != RefundPending
}

// ParseRefundDecision accepts Approved or Rejected (case-insensitive)
func ParseRefundDecision(raw string) (RefundStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved":
		return RefundApproved, nil
	case "rejected":
		return RefundRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRefundStatus, raw)
}
