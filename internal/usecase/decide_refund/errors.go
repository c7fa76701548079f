package decide_refund

import "errors"

var (
	// ErrInvalidStatus возвращается, если решение не Approved и не Rejected
	ErrInvalidStatus = errors.New("decide_refund: status must be Approved or Rejected")

	// ErrRefundNotFound возвращается, когда заявка не найдена
	ErrRefundNotFound = errors.New("decide_refund: refund not found")

	// ErrForbidden возвращается, когда решение принимает не владелец мойки
	ErrForbidden = errors.New("decide_refund: access denied")

	// ErrRefundAlreadyDecided возвращается для уже рассмотренной заявки
	ErrRefundAlreadyDecided = errors.New("decide_refund: refund already decided")

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = errors.New("decide_refund: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_refund: internal error")
)
