package update_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_status: invalid input data")

	// ErrInvalidStatus возвращается, когда новый статус не распознан
	ErrInvalidStatus = errors.New("update_status: invalid status")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_status: booking not found")

	// ErrForbidden возвращается, когда пользователь пытается изменить чужое бронирование
	ErrForbidden = errors.New("update_status: access denied")

	// ErrInvalidTransition возвращается, когда переход из текущего статуса запрещён
	ErrInvalidTransition = errors.New("update_status: status transition not allowed")

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = errors.New("update_status: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
