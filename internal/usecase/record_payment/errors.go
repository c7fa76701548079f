package record_payment

import "errors"

var (
	// ErrValidation возвращается при отсутствии обязательных полей или некорректном статусе оплаты
	ErrValidation = errors.New("record_payment: validation failed")

	// ErrInvalidAmount возвращается, если сумма не положительное конечное число
	ErrInvalidAmount = errors.New("record_payment: invalid amount")

	// ErrDuplicatePayment возвращается при повторном использовании ключа идемпотентности
	ErrDuplicatePayment = errors.New("record_payment: duplicate payment submission")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("record_payment: booking not found")

	// ErrBookingClosed возвращается для отклонённых, отменённых и возвращённых бронирований
	ErrBookingClosed = errors.New("record_payment: booking does not accept payments")

	// ErrAmountExceedsBalance возвращается, если сумма больше остатка к оплате
	ErrAmountExceedsBalance = errors.New("record_payment: amount exceeds remaining balance")

	// ErrNothingToPay возвращается при оплате остатка, когда бронирование уже оплачено
	ErrNothingToPay = errors.New("record_payment: booking is already fully paid")

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = errors.New("record_payment: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)
