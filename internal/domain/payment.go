package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Payment is an immutable record of a single accepted payment
type Payment struct {
	PaymentID     string
	AppointmentID string
	UserID        int64
	Amount        float64
	Method        string
	PaymentStatus PaymentStatus
	ReceiptURL    *string
	CreatedAt     time.Time
}

// ParseAmount parses a client-supplied amount. Zero, negative, NaN, infinite and
// non-numeric values are rejected. The result is rounded to cents.
func ParseAmount(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount := RoundMoney(value)
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}

// ParsePaymentStatus accepts only the statuses a client may set explicitly
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(raw), string(PaymentPartial)):
		return PaymentPartial, nil
	case strings.EqualFold(strings.TrimSpace(raw), string(PaymentPaid)):
		return PaymentPaid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, raw)
}

// RoundMoney rounds to two decimal places
func RoundMoney(v float64) float64 {
	return float64(Cents(v)) / 100
}

// Cents converts an amount to integer cents
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Remaining returns price - paid, never negative
func Remaining(price, paid float64) float64 {
	left := Cents(price) - Cents(paid)
	if left < 0 {
		return 0
	}
	return float64(left) / 100
}

// CheckBalance rejects an amount larger than what is still owed
func CheckBalance(price, paidBefore, amount float64) error {
	if Cents(amount) > Cents(price)-Cents(paidBefore) {
		return fmt.Errorf("%w: amount %.2f, remaining %.2f", ErrAmountExceedsBalance, amount, Remaining(price, paidBefore))
	}
	return nil
}

// ResolvePaymentStatus returns the override when given, otherwise Paid once the
// running total reaches the price and Partial before that
func ResolvePaymentStatus(price, paidBefore, amount float64, override *PaymentStatus) PaymentStatus {
	if override != nil {
		return *override
	}
	if Cents(paidBefore)+Cents(amount) >= Cents(price) {
		return PaymentPaid
	}
	return PaymentPartial
}
