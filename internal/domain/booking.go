package domain

import (
	"time"

	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// PaymentStatus represents the payment rollup of a booking
type PaymentStatus string

const (
	PaymentPartial  PaymentStatus = "Partial"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Booking represents a carwash appointment
type Booking struct {
	AppointmentID string
	UserID        int64
	ShopID        int64
	PersonnelID   *int64 // назначается владельцем мойки, может быть пустым до назначения

	// Snapshot of the service at booking time
	ServiceName string
	Price       float64

	ScheduleDate time.Time
	ScheduleTime types.TimeString
	Status       BookingStatus

	PaymentStatus *PaymentStatus
	PaidAmount    float64

	StartedAt   *time.Time
	CompletedAt *time.Time
	Notes       *string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the booking is not in a terminal status
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// IsRefunded returns true if the payment rollup was reset by an approved refund
func (b *Booking) IsRefunded() bool {
	return b.PaymentStatus != nil && *b.PaymentStatus == PaymentRefunded
}

// AcceptsPayments returns false for declined, cancelled and refunded bookings
func (b *Booking) AcceptsPayments() bool {
	if b.Status == StatusDeclined || b.Status == StatusCancelled {
		return false
	}
	return !b.IsRefunded()
}

// RemainingBalance returns the unpaid part of the price, never negative
func (b *Booking) RemainingBalance() float64 {
	return Remaining(b.Price, b.PaidAmount)
}

// BookingUpdate is a partial update of a booking row. Nil fields are left untouched.
type BookingUpdate struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	PaidAmount    *float64
	PersonnelID   *int64
	ScheduleDate  *time.Time
	ScheduleTime  *types.TimeString
	StartedAt     *time.Time
	CompletedAt   *time.Time
}

// IsEmpty returns true if the update changes nothing
func (u BookingUpdate) IsEmpty() bool {
	return u.Status == nil &&
		u.PaymentStatus == nil &&
		u.PaidAmount == nil &&
		u.PersonnelID == nil &&
		u.ScheduleDate == nil &&
		u.ScheduleTime == nil &&
		u.StartedAt == nil &&
		u.CompletedAt == nil
}

// ShopBookingsFilter фильтр для получения бронирований мойки
type ShopBookingsFilter struct {
	ShopID          int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые, отклонённые и отменённые
}
