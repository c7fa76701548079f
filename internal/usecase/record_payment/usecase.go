package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

const idempotencyScope = "payment"

// UseCase use case для приёма платежей по бронированию
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	guard       IdempotencyGuard
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
	newID       func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	guard IdempotencyGuard,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		guard:       guard,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// Execute принимает платёж на указанную сумму.
// Используется как для первого, так и для последующих платежей.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: appointment=%s, user=%d, amount=%q, method=%q", req.AppointmentID, req.UserID, req.Amount, req.Method)

	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	return uc.record(ctx, in)
}

// ExecuteRemaining оплачивает остаток, рассчитанный на сервере
func (uc *UseCase) ExecuteRemaining(ctx context.Context, req *RemainingRequest) (*Response, error) {
	uc.logger.Info("RecordPayment: remaining balance for appointment=%s, user=%d, method=%q", req.AppointmentID, req.UserID, req.Method)

	in, err := validateRemainingRequest(req)
	if err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	return uc.record(ctx, in)
}

func (uc *UseCase) record(ctx context.Context, in *paymentInput) (*Response, error) {
	// 1. Защита от повторной отправки
	if in.idempotencyKey != "" {
		key := in.appointmentID + ":" + in.idempotencyKey
		if err := uc.guard.Acquire(ctx, idempotencyScope, key); err != nil {
			if errors.Is(err, idempotency.ErrDuplicate) {
				uc.logger.Warn("RecordPayment: duplicate submission for appointment=%s", in.appointmentID)
				return nil, ErrDuplicatePayment
			}
			uc.logger.Error("RecordPayment: idempotency guard failed: %v", err)
			return nil, fmt.Errorf("%w: idempotency guard: %v", ErrInternal, err)
		}
	}

	// 2. Транзакция: блокировка бронирования, проверка остатка, платёж и пересчёт итогов
	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.apply(txCtx, in)
		return err
	})

	if err != nil {
		uc.releaseKey(ctx, in)
		return nil, err
	}

	uc.metrics.ObservePayment(string(resp.PaymentStatus), resp.Amount)
	uc.logger.Info("RecordPayment: payment %s accepted for appointment=%s, amount=%.2f, status=%s, paid=%.2f",
		resp.PaymentID, resp.AppointmentID, resp.Amount, resp.PaymentStatus, resp.PaidAmount)

	// 3. Уведомление после коммита
	err = uc.notifier.Notify(ctx, notifications.Event{
		Kind:          notifications.KindPaymentRecorded,
		AppointmentID: resp.AppointmentID,
		Status:        string(resp.PaymentStatus),
		Amount:        resp.Amount,
	})
	if err != nil {
		uc.logger.Error("RecordPayment: failed to queue notification for appointment=%s: %v", resp.AppointmentID, err)
	}

	return resp, nil
}

func (uc *UseCase) apply(ctx context.Context, in *paymentInput) (*Response, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, in.appointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RecordPayment: booking %s not found", in.appointmentID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RecordPayment: failed to get booking %s: %v", in.appointmentID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.AcceptsPayments() {
		uc.logger.Warn("RecordPayment: booking %s is %s, payment rejected", in.appointmentID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrBookingClosed, booking.Status)
	}

	paidBefore, err := uc.paymentRepo.SumByAppointment(ctx, in.appointmentID)
	if err != nil {
		uc.logger.Error("RecordPayment: failed to sum payments for %s: %v", in.appointmentID, err)
		return nil, fmt.Errorf("%w: failed to sum payments: %v", ErrInternal, err)
	}

	var amount float64
	if in.amount != nil {
		amount = *in.amount
		if err := domain.CheckBalance(booking.Price, paidBefore, amount); err != nil {
			uc.logger.Warn("RecordPayment: %v", err)
			return nil, fmt.Errorf("%w: remaining %.2f", ErrAmountExceedsBalance, domain.Remaining(booking.Price, paidBefore))
		}
	} else {
		amount = domain.Remaining(booking.Price, paidBefore)
		if amount <= 0 {
			return nil, ErrNothingToPay
		}
	}

	status := domain.ResolvePaymentStatus(booking.Price, paidBefore, amount, in.override)

	payment, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		PaymentID:     uc.newID(),
		AppointmentID: in.appointmentID,
		UserID:        in.userID,
		Amount:        amount,
		Method:        in.method,
		PaymentStatus: status,
		ReceiptURL:    in.receiptURL,
	})
	if err != nil {
		uc.logger.Error("RecordPayment: failed to insert payment for %s: %v", in.appointmentID, err)
		return nil, fmt.Errorf("%w: failed to insert payment: %v", ErrInternal, err)
	}

	paidAfter := domain.RoundMoney(paidBefore + amount)
	upd := domain.BookingUpdate{
		PaidAmount:    &paidAfter,
		PaymentStatus: &status,
	}

	if _, err := uc.bookingRepo.Update(ctx, in.appointmentID, booking.Version, upd); err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			uc.logger.Warn("RecordPayment: version conflict on booking %s", in.appointmentID)
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("RecordPayment: failed to update booking %s: %v", in.appointmentID, err)
		return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	return &Response{
		PaymentID:     payment.PaymentID,
		AppointmentID: in.appointmentID,
		Amount:        amount,
		Method:        in.method,
		PaymentStatus: status,
		PaidAmount:    paidAfter,
		Remaining:     domain.Remaining(booking.Price, paidAfter),
		CreatedAt:     payment.CreatedAt,
	}, nil
}

// releaseKey освобождает ключ идемпотентности, чтобы клиент мог повторить неудавшийся запрос
func (uc *UseCase) releaseKey(ctx context.Context, in *paymentInput) {
	if in.idempotencyKey == "" {
		return
	}
	if err := uc.guard.Release(ctx, idempotencyScope, in.appointmentID+":"+in.idempotencyKey); err != nil {
		uc.logger.Warn("RecordPayment: failed to release idempotency key for %s: %v", in.appointmentID, err)
	}
}
