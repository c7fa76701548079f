package record_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

// validateRequest разбирает и валидирует запрос без обращения к хранилищу
func validateRequest(req *Request) (*paymentInput, error) {
	in, err := validateCommon(req.AppointmentID, req.UserID, req.Method, req.ReceiptURL)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Amount) == "" {
		return nil, fmt.Errorf("%w: amount is required", ErrValidation)
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}
	in.amount = &amount

	if strings.TrimSpace(req.PaymentStatus) != "" {
		status, err := domain.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: payment_status must be Partial or Paid", ErrValidation)
		}
		in.override = &status
	}

	in.idempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	return in, nil
}

// validateRemainingRequest валидирует запрос на оплату остатка
func validateRemainingRequest(req *RemainingRequest) (*paymentInput, error) {
	in, err := validateCommon(req.AppointmentID, req.UserID, req.Method, req.ReceiptURL)
	if err != nil {
		return nil, err
	}
	in.idempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	return in, nil
}

func validateCommon(appointmentID string, userID int64, method string, receiptURL *string) (*paymentInput, error) {
	if strings.TrimSpace(appointmentID) == "" {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrValidation)
	}

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID is required", ErrValidation)
	}

	method = strings.TrimSpace(method)
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrValidation)
	}

	if len(method) > domain.MaxPaymentMethodLength {
		return nil, fmt.Errorf("%w: method must be at most %d characters", ErrValidation, domain.MaxPaymentMethodLength)
	}

	if receiptURL != nil && len(*receiptURL) > domain.MaxReceiptURLLength {
		return nil, fmt.Errorf("%w: receipt_url must be at most %d characters", ErrValidation, domain.MaxReceiptURLLength)
	}

	return &paymentInput{
		appointmentID: appointmentID,
		userID:        userID,
		method:        canonicalMethod(method),
		receiptURL:    receiptURL,
	}, nil
}

// canonicalMethod приводит регистр известных способов оплаты, остальные сохраняются как есть
func canonicalMethod(method string) string {
	for _, m := range domain.PaymentMethods {
		if strings.EqualFold(m, method) {
			return m
		}
	}
	return method
}
