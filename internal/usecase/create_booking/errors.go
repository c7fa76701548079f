package create_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда мойка не найдена
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrPersonnelNotFound возвращается, когда сотрудник не найден или работает в другой мойке
	ErrPersonnelNotFound = errors.New("create_booking: personnel not found")

	// ErrActiveBookingExists возвращается, когда у клиента уже есть незавершённое бронирование
	ErrActiveBookingExists = errors.New("create_booking: user already has an active booking")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда время бронирования на сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this time")

	// ErrDayUnavailable возвращается, если сотрудник не работает в этот день
	ErrDayUnavailable = errors.New("create_booking: personnel is not available on this day")

	// ErrTimeUnavailable возвращается, если время вне рабочего окна сотрудника
	ErrTimeUnavailable = errors.New("create_booking: personnel is not available at this time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
