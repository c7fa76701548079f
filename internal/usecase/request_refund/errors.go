package request_refund

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("request_refund: validation failed")

	// ErrInvalidAmount возвращается, если сумма не положительное конечное число
	ErrInvalidAmount = errors.New("request_refund: invalid amount")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("request_refund: booking not found")

	// ErrForbidden возвращается, когда клиент запрашивает возврат по чужому бронированию
	ErrForbidden = errors.New("request_refund: access denied")

	// ErrAmountExceedsPaid возвращается, если сумма возврата больше оплаченной
	ErrAmountExceedsPaid = errors.New("request_refund: amount exceeds paid amount")

	// ErrRefundAlreadyPending возвращается, если по бронированию уже есть нерассмотренная заявка
	ErrRefundAlreadyPending = errors.New("request_refund: refund already pending for booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_refund: internal error")
)
