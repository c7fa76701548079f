package assign_personnel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	personnelRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/personnel"
)

// UseCase use case для назначения сотрудника на бронирование
type UseCase struct {
	bookingRepo   BookingRepository
	shopRepo      ShopRepository
	personnelRepo PersonnelRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	personnelRepo PersonnelRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		shopRepo:      shopRepo,
		personnelRepo: personnelRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute назначает или переназначает сотрудника мойки на бронирование.
// Время бронирования проверяется по графику сотрудника.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignPersonnel: appointment=%s, personnel=%d, owner=%d", req.AppointmentID, req.PersonnelID, req.OwnerID)

	if strings.TrimSpace(req.AppointmentID) == "" || req.PersonnelID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID and personnel_id are required", ErrValidation)
	}

	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование и права владельца мойки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("AssignPersonnel: failed to get booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		shop, err := uc.shopRepo.GetByID(txCtx, booking.ShopID)
		if err != nil {
			uc.logger.Error("AssignPersonnel: failed to get shop %d: %v", booking.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}
		if shop.OwnerID != req.OwnerID {
			uc.logger.Warn("AssignPersonnel: user %d does not own shop %d", req.OwnerID, shop.ID)
			return ErrForbidden
		}

		if !booking.IsActive() {
			return fmt.Errorf("%w: status %s", ErrBookingClosed, booking.Status)
		}

		// 2. Сотрудник должен работать в этой мойке и быть доступен во время бронирования
		personnel, err := uc.personnelRepo.GetByID(txCtx, req.PersonnelID)
		if err != nil {
			if errors.Is(err, personnelRepo.ErrPersonnelNotFound) {
				return ErrPersonnelNotFound
			}
			uc.logger.Error("AssignPersonnel: failed to get personnel %d: %v", req.PersonnelID, err)
			return fmt.Errorf("%w: failed to get personnel: %v", ErrInternal, err)
		}
		if personnel.ShopID != booking.ShopID {
			return fmt.Errorf("%w: personnel %d works in another shop", ErrPersonnelNotFound, personnel.ID)
		}

		if err := personnel.CheckAvailability(booking.ScheduleDate, booking.ScheduleTime); err != nil {
			uc.logger.Warn("AssignPersonnel: %v", err)
			return mapAvailabilityError(err)
		}

		// 3. Запись назначения
		upd := domain.BookingUpdate{PersonnelID: &personnel.ID}
		if _, err := uc.bookingRepo.Update(txCtx, req.AppointmentID, booking.Version, upd); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("AssignPersonnel: failed to update booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp = &Response{
			AppointmentID: req.AppointmentID,
			PersonnelID:   personnel.ID,
			FullName:      personnel.FullName,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AssignPersonnel: personnel %d assigned to booking %s", resp.PersonnelID, resp.AppointmentID)
	return resp, nil
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDayUnavailable):
		return fmt.Errorf("%w: %v", ErrDayUnavailable, err)
	case errors.Is(err, domain.ErrTimeUnavailable):
		return fmt.Errorf("%w: %v", ErrTimeUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
