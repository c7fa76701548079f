package assign_personnel

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("assign_personnel: validation failed")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("assign_personnel: booking not found")

	// ErrPersonnelNotFound возвращается, когда сотрудник не найден или работает в другой мойке
	ErrPersonnelNotFound = errors.New("assign_personnel: personnel not found")

	// ErrForbidden возвращается, когда назначение выполняет не владелец мойки
	ErrForbidden = errors.New("assign_personnel: access denied")

	// ErrBookingClosed возвращается для завершённых, отклонённых и отменённых бронирований
	ErrBookingClosed = errors.New("assign_personnel: booking is closed")

	// ErrDayUnavailable возвращается, если сотрудник не работает в день бронирования
	ErrDayUnavailable = errors.New("assign_personnel: personnel is not available on this day")

	// ErrTimeUnavailable возвращается, если время бронирования вне рабочего окна
	ErrTimeUnavailable = errors.New("assign_personnel: personnel is not available at this time")

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = errors.New("assign_personnel: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_personnel: internal error")
)
