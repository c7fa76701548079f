package request_refund

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
)

// UseCase use case для подачи заявки на возврат
type UseCase struct {
	bookingRepo BookingRepository
	shopRepo    ShopRepository
	refundRepo  RefundRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	refundRepo RefundRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		shopRepo:    shopRepo,
		refundRepo:  refundRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute создаёт заявку на возврат по собственному бронированию клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestRefund: user=%d, booking=%s, amount=%q", req.UserID, req.BookingID, req.Amount)

	// 1. Валидация
	if req.UserID <= 0 || strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: user and booking_id are required", ErrValidation)
	}
	if strings.TrimSpace(req.Reason) == "" || len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is required and must be at most %d characters", ErrValidation, domain.MaxReasonLength)
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		uc.logger.Warn("RequestRefund: invalid amount %q", req.Amount)
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}

	// 2. Транзакция: блокировка бронирования сериализует заявки по нему
	var created *domain.RefundRequest
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RequestRefund: failed to get booking %s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("RequestRefund: user %d is not the owner of booking %s", req.UserID, req.BookingID)
			return ErrForbidden
		}

		if domain.Cents(amount) > domain.Cents(booking.PaidAmount) {
			return fmt.Errorf("%w: paid %.2f", ErrAmountExceedsPaid, booking.PaidAmount)
		}

		pending, err := uc.refundRepo.ExistsPendingForBooking(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("RequestRefund: failed to check pending refunds for %s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to check pending refunds: %v", ErrInternal, err)
		}
		if pending {
			return ErrRefundAlreadyPending
		}

		shop, err := uc.shopRepo.GetByID(txCtx, booking.ShopID)
		if err != nil {
			uc.logger.Error("RequestRefund: failed to get shop %d: %v", booking.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}

		created, err = uc.refundRepo.Create(txCtx, &domain.RefundRequest{
			Customer:  req.UserID,
			Amount:    amount,
			Reason:    strings.TrimSpace(req.Reason),
			BookingID: req.BookingID,
			OwnerID:   shop.OwnerID,
			Status:    domain.RefundPending,
		})
		if err != nil {
			uc.logger.Error("RequestRefund: failed to create refund for %s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to create refund: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestRefund: refund %d created for booking %s", created.ID, created.BookingID)

	return &Response{
		RefundID:    created.ID,
		BookingID:   created.BookingID,
		Amount:      created.Amount,
		Status:      created.Status,
		RequestedAt: created.RequestedAt,
	}, nil
}
