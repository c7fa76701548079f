package update_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	historyRepo  HistoryRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// strict включает таблицу допустимых переходов; без неё разрешён любой переход
	strict bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	strict bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		historyRepo:  historyRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		strict:       strict,
	}
}

// Execute меняет статус бронирования.
// Чтение с блокировкой, обновление и запись в историю выполняются в одной транзакции;
// уведомление отправляется только после коммита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: appointment=%s, new_status=%q, changed_by=%q", req.AppointmentID, req.NewStatus, req.ChangedBy)

	// 1. Валидация входных данных (без обращения к БД)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, err
	}

	newStatus, err := domain.ParseBookingStatus(req.NewStatus)
	if err != nil {
		uc.logger.Warn("UpdateStatus: invalid status %q for appointment=%s", req.NewStatus, req.AppointmentID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.NewStatus)
	}

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = domain.ChangedBySystem
	}

	now := uc.timeProvider.Now()
	var resp *Response

	// 2. Транзакция: блокируем бронирование, проверяем переход, обновляем и пишем историю
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateStatus: booking %s not found", req.AppointmentID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateStatus: failed to get booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if req.OwnerID != nil && booking.UserID != *req.OwnerID {
			uc.logger.Warn("UpdateStatus: user %d is not the owner of booking %s", *req.OwnerID, req.AppointmentID)
			return ErrForbidden
		}

		if err := domain.CheckTransition(booking.Status, newStatus, uc.strict); err != nil {
			uc.logger.Warn("UpdateStatus: %s -> %s rejected for booking %s", booking.Status, newStatus, req.AppointmentID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		upd := stampTransition(booking, newStatus, now)

		if _, err := uc.bookingRepo.Update(txCtx, req.AppointmentID, booking.Version, upd); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("UpdateStatus: version conflict on booking %s", req.AppointmentID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("UpdateStatus: failed to update booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		_, err = uc.historyRepo.Create(txCtx, &domain.StatusHistory{
			AppointmentID: req.AppointmentID,
			OldStatus:     booking.Status,
			NewStatus:     newStatus,
			ChangedBy:     changedBy,
			Reason:        req.Reason,
			ChangedAt:     now,
		})
		if err != nil {
			uc.logger.Error("UpdateStatus: failed to write history for booking %s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to write history: %v", ErrInternal, err)
		}

		resp = &Response{
			AppointmentID: req.AppointmentID,
			OldStatus:     booking.Status,
			NewStatus:     newStatus,
			StartedAt:     booking.StartedAt,
			CompletedAt:   booking.CompletedAt,
			ChangedAt:     now,
		}
		if upd.StartedAt != nil {
			resp.StartedAt = upd.StartedAt
		}
		if upd.CompletedAt != nil {
			resp.CompletedAt = upd.CompletedAt
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncStatusTransition(string(resp.OldStatus), string(resp.NewStatus))
	uc.logger.Info("UpdateStatus: booking %s changed %s -> %s", req.AppointmentID, resp.OldStatus, resp.NewStatus)

	// 3. Уведомление после коммита; ошибка не влияет на результат
	if newStatus.NotifiesCustomer() {
		uc.notify(ctx, req.AppointmentID, newStatus, req.Reason)
	}

	return resp, nil
}

// stampTransition формирует обновление: статус и однократные отметки started_at/completed_at
func stampTransition(booking *domain.Booking, newStatus domain.BookingStatus, now time.Time) domain.BookingUpdate {
	upd := domain.BookingUpdate{Status: &newStatus}

	if newStatus == domain.StatusInProgress && booking.StartedAt == nil {
		upd.StartedAt = &now
	}
	if newStatus == domain.StatusCompleted && booking.CompletedAt == nil {
		upd.CompletedAt = &now
	}

	return upd
}

func (uc *UseCase) notify(ctx context.Context, appointmentID string, status domain.BookingStatus, reason string) {
	err := uc.notifier.Notify(ctx, notifications.Event{
		Kind:          notifications.KindStatusChanged,
		AppointmentID: appointmentID,
		Status:        string(status),
		Reason:        reason,
	})
	if err != nil {
		uc.logger.Error("UpdateStatus: failed to queue notification for booking %s: %v", appointmentID, err)
	}
}
