package decide_refund

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	refundRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/refund"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

// UseCase use case для одобрения или отклонения возврата
type UseCase struct {
	refundRepo   RefundRepository
	bookingRepo  BookingRepository
	historyRepo  HistoryRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	refundRepo RefundRepository,
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		refundRepo:   refundRepo,
		bookingRepo:  bookingRepo,
		historyRepo:  historyRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute фиксирует решение по заявке. Одобрение обнуляет оплату по бронированию,
// помечает его Refunded и отменяет; все изменения выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideRefund: refund=%d, status=%q, decided_by=%d", req.RefundID, req.Status, req.DecidedBy)

	decision, err := domain.ParseRefundDecision(req.Status)
	if err != nil {
		uc.logger.Warn("DecideRefund: invalid decision %q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	now := uc.timeProvider.Now()
	var (
		resp       *Response
		refund     *domain.RefundRequest
		prevStatus domain.BookingStatus
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		refund, err = uc.refundRepo.GetByIDForUpdate(txCtx, req.RefundID)
		if err != nil {
			if errors.Is(err, refundRepo.ErrRefundNotFound) {
				return ErrRefundNotFound
			}
			uc.logger.Error("DecideRefund: failed to get refund %d: %v", req.RefundID, err)
			return fmt.Errorf("%w: failed to get refund: %v", ErrInternal, err)
		}

		if req.DecidedBy != 0 && refund.OwnerID != req.DecidedBy {
			uc.logger.Warn("DecideRefund: user %d is not the owner of refund %d", req.DecidedBy, req.RefundID)
			return ErrForbidden
		}

		if refund.IsDecided() {
			return fmt.Errorf("%w: %s", ErrRefundAlreadyDecided, refund.Status)
		}

		if err := uc.refundRepo.UpdateStatus(txCtx, refund.ID, decision, now); err != nil {
			uc.logger.Error("DecideRefund: failed to update refund %d: %v", refund.ID, err)
			return fmt.Errorf("%w: failed to update refund: %v", ErrInternal, err)
		}

		resp = &Response{
			RefundID:  refund.ID,
			BookingID: refund.BookingID,
			Status:    decision,
			DecidedAt: now,
		}

		if decision != domain.RefundApproved {
			return nil
		}

		prevStatus, err = uc.cascade(txCtx, refund, now)
		if err != nil {
			return err
		}
		cancelled := domain.StatusCancelled
		resp.BookingStatus = &cancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncRefundDecision(string(decision))
	if resp.BookingStatus != nil {
		uc.metrics.IncStatusTransition(string(prevStatus), string(*resp.BookingStatus))
	}
	uc.logger.Info("DecideRefund: refund %d %s for booking %s", resp.RefundID, resp.Status, resp.BookingID)

	err = uc.notifier.Notify(ctx, notifications.Event{
		Kind:          notifications.KindRefundDecided,
		AppointmentID: refund.BookingID,
		Status:        string(decision),
		Amount:        refund.Amount,
		Reason:        refund.Reason,
	})
	if err != nil {
		uc.logger.Error("DecideRefund: failed to queue notification for refund %d: %v", refund.ID, err)
	}

	return resp, nil
}

// cascade сбрасывает оплату и отменяет связанное бронирование, возвращает прежний статус
func (uc *UseCase) cascade(ctx context.Context, refund *domain.RefundRequest, now time.Time) (domain.BookingStatus, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, refund.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("DecideRefund: refund %d points to missing booking %s", refund.ID, refund.BookingID)
		}
		return "", fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	zero := 0.0
	refunded := domain.PaymentRefunded
	cancelled := domain.StatusCancelled

	upd := domain.BookingUpdate{
		PaidAmount:    &zero,
		PaymentStatus: &refunded,
		Status:        &cancelled,
	}

	if _, err := uc.bookingRepo.Update(ctx, booking.AppointmentID, booking.Version, upd); err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return "", ErrConcurrentUpdate
		}
		uc.logger.Error("DecideRefund: failed to cancel booking %s: %v", booking.AppointmentID, err)
		return "", fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	_, err = uc.historyRepo.Create(ctx, &domain.StatusHistory{
		AppointmentID: booking.AppointmentID,
		OldStatus:     booking.Status,
		NewStatus:     cancelled,
		ChangedBy:     domain.ChangedByRefund,
		Reason:        refund.Reason,
		ChangedAt:     now,
	})
	if err != nil {
		uc.logger.Error("DecideRefund: failed to write history for booking %s: %v", booking.AppointmentID, err)
		return "", fmt.Errorf("%w: failed to write history: %v", ErrInternal, err)
	}

	return booking.Status, nil
}
