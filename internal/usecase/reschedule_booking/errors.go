package reschedule_booking

import "errors"

var (
	// ErrValidation возвращается при некорректной дате или времени
	ErrValidation = errors.New("reschedule_booking: validation failed")

	// ErrScheduleInPast возвращается, если новая дата или время уже прошли
	ErrScheduleInPast = errors.New("reschedule_booking: schedule is in the past")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden возвращается, когда клиент переносит чужое бронирование
	ErrForbidden = errors.New("reschedule_booking: access denied")

	// ErrBookingClosed возвращается для завершённых, отклонённых и отменённых бронирований
	ErrBookingClosed = errors.New("reschedule_booking: booking can no longer be rescheduled")

	// ErrDayUnavailable возвращается, если сотрудник не работает в этот день
	ErrDayUnavailable = errors.New("reschedule_booking: personnel is not available on this day")

	// ErrTimeUnavailable возвращается, если время вне рабочего окна сотрудника
	ErrTimeUnavailable = errors.New("reschedule_booking: personnel is not available at this time")

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = errors.New("reschedule_booking: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
