package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
)

// UseCase use case для переноса бронирования на другую дату и время
type UseCase struct {
	bookingRepo   BookingRepository
	personnelRepo PersonnelRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	personnelRepo PersonnelRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		personnelRepo: personnelRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute переносит бронирование. Если сотрудник уже назначен, новое время
// проверяется по его графику; без сотрудника проверка пропускается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: appointment=%s, user=%d, date=%s, time=%s", req.AppointmentID, req.UserID, req.ScheduleDate, req.ScheduleTime)

	date, at, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	if err := domain.CheckNotPast(date, at, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleInPast, err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user %d is not the owner of booking %s", req.UserID, req.AppointmentID)
			return ErrForbidden
		}

		if !booking.IsActive() {
			return fmt.Errorf("%w: status %s", ErrBookingClosed, booking.Status)
		}

		if booking.PersonnelID != nil {
			personnel, err := uc.personnelRepo.GetByID(txCtx, *booking.PersonnelID)
			if err != nil {
				uc.logger.Error("RescheduleBooking: failed to get personnel %d: %v", *booking.PersonnelID, err)
				return fmt.Errorf("%w: failed to get personnel: %v", ErrInternal, err)
			}

			if err := personnel.CheckAvailability(date, at); err != nil {
				uc.logger.Warn("RescheduleBooking: %v", err)
				return mapAvailabilityError(err)
			}
		}

		upd := domain.BookingUpdate{
			ScheduleDate: &date,
			ScheduleTime: &at,
		}

		if _, err := uc.bookingRepo.Update(txCtx, req.AppointmentID, booking.Version, upd); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("RescheduleBooking: failed to update booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking %s moved to %s %s", req.AppointmentID, date.Format(domain.DateFormat), at)

	return &Response{
		AppointmentID: req.AppointmentID,
		ScheduleDate:  date,
		ScheduleTime:  at,
	}, nil
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDayUnavailable):
		return fmt.Errorf("%w: %v", ErrDayUnavailable, err)
	case errors.Is(err, domain.ErrTimeUnavailable):
		return fmt.Errorf("%w: %v", ErrTimeUnavailable, err)
	default:
		// некорректный график сотрудника в справочнике
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
