package domain

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidStatus        = errors.New("domain: invalid booking status")
	ErrInvalidTransition    = errors.New("domain: status transition not allowed")
	ErrInvalidAmount        = errors.New("domain: amount must be a positive number")
	ErrInvalidPaymentStatus = errors.New("domain: payment status must be Partial or Paid")
	ErrAmountExceedsBalance = errors.New("domain: amount exceeds remaining balance")
	ErrInvalidRefundStatus  = errors.New("domain: refund status must be Approved or Rejected")

	ErrDayUnavailable      = errors.New("domain: personnel is not available on this day")
	ErrTimeUnavailable     = errors.New("domain: personnel is not available at this time")
	ErrInvalidAvailability = errors.New("domain: malformed personnel availability")
	ErrInvalidScheduleTime = errors.New("domain: schedule time must be HH:MM")
	ErrDateInPast          = errors.New("domain: schedule date is in the past")
	ErrTimePassed          = errors.New("domain: schedule time has already passed")
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
