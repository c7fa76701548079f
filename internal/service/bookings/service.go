package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-CarwashBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований, истории и платежей
type Service struct {
	bookingRepo   BookingRepository
	historyRepo   HistoryRepository
	paymentRepo   PaymentRepository
	shopRepo      ShopRepository
	personnelRepo PersonnelRepository
	refundRepo    RefundRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	paymentRepo PaymentRepository,
	shopRepo ShopRepository,
	personnelRepo PersonnelRepository,
	refundRepo RefundRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		historyRepo:   historyRepo,
		paymentRepo:   paymentRepo,
		shopRepo:      shopRepo,
		personnelRepo: personnelRepo,
		refundRepo:    refundRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает бронирование по appointment_id
// Доступно клиенту-владельцу бронирования и владельцу мойки
func (s *Service) GetByID(ctx context.Context, appointmentID string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", appointmentID, userID)

	booking, err := s.loadBooking(ctx, "GetByID", appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, appointmentID)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", appointmentID)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования клиента, опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, requester=%d", req.UserID, req.RequesterID)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetShopBookings получает бронирования мойки с фильтрацией по периоду и статусу.
// Доступно только владельцу мойки.
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetShopBookings: fetching bookings for shop=%d, user=%d, includeInactive=%t", req.ShopID, req.UserID, req.IncludeInactive)

	if err := s.checkShopOwner(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%d", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings), nil
}

// GetLatestReason возвращает причину последней смены статуса.
// Если истории нет, причина пустая.
func (s *Service) GetLatestReason(ctx context.Context, appointmentID string) (*models.ReasonResponse, error) {
	s.logger.Info("GetLatestReason: booking id=%s", appointmentID)

	if _, err := s.loadBooking(ctx, "GetLatestReason", appointmentID); err != nil {
		return nil, err
	}

	entry, err := s.historyRepo.GetLatestByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("GetLatestReason: repository error for booking id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetLatestReason - repository error: %v", ErrInternal, err)
	}

	resp := &models.ReasonResponse{AppointmentID: appointmentID}
	if entry != nil {
		status := string(entry.NewStatus)
		resp.Status = &status
		resp.Reason = entry.Reason
	}
	return resp, nil
}

// GetHistory возвращает историю статусов бронирования
func (s *Service) GetHistory(ctx context.Context, appointmentID string, userID int64) (*models.HistoryResponse, error) {
	s.logger.Info("GetHistory: booking id=%s, user=%d", appointmentID, userID)

	booking, err := s.loadBooking(ctx, "GetHistory", appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("GetHistory: repository error for booking id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(appointmentID, entries), nil
}

// GetPayments возвращает платежи по бронированию и остаток к оплате.
// Бронирование и платежи читаются в одной read-only транзакции.
func (s *Service) GetPayments(ctx context.Context, appointmentID string, userID int64) (*models.PaymentsResponse, error) {
	s.logger.Info("GetPayments: booking id=%s, user=%d", appointmentID, userID)

	var (
		booking  *domain.Booking
		payments []*domain.Payment
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.loadBooking(txCtx, "GetPayments", appointmentID)
		if err != nil {
			return err
		}

		if err := s.checkUserAccess(txCtx, booking, userID); err != nil {
			return err
		}

		payments, err = s.paymentRepo.ListByAppointment(txCtx, appointmentID)
		if err != nil {
			s.logger.Error("GetPayments: repository error for booking id=%s: %v", appointmentID, err)
			return fmt.Errorf("%w: GetPayments - repository error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return models.FromDomainPayments(booking, payments), nil
}

// GetShopPersonnel возвращает сотрудников мойки вместе с их графиком
func (s *Service) GetShopPersonnel(ctx context.Context, shopID int64) (*models.PersonnelListResponse, error) {
	s.logger.Info("GetShopPersonnel: shop=%d", shopID)

	if _, err := s.loadShop(ctx, shopID); err != nil {
		return nil, err
	}

	list, err := s.personnelRepo.ListByShop(ctx, shopID)
	if err != nil {
		s.logger.Error("GetShopPersonnel: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetShopPersonnel - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPersonnel(shopID, list), nil
}

// GetOwnerRefunds возвращает заявки на возврат по мойкам владельца
func (s *Service) GetOwnerRefunds(ctx context.Context, ownerID int64, status *string) (*models.RefundListResponse, error) {
	s.logger.Info("GetOwnerRefunds: owner=%d", ownerID)

	var filter *domain.RefundStatus
	if status != nil {
		switch domain.RefundStatus(*status) {
		case domain.RefundPending, domain.RefundApproved, domain.RefundRejected:
			st := domain.RefundStatus(*status)
			filter = &st
		default:
			return nil, fmt.Errorf("%w: invalid refund status", ErrInvalidInput)
		}
	}

	refunds, err := s.refundRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("GetOwnerRefunds: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetOwnerRefunds - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRefunds(refunds), nil
}

// Вспомогательные методы

func (s *Service) loadBooking(ctx context.Context, op, appointmentID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, appointmentID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, appointmentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) loadShop(ctx context.Context, shopID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("loadShop: shop id=%d not found", shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("loadShop: failed to get shop id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: loadShop - repository error: %v", ErrInternal, err)
	}
	return shop, nil
}

// checkUserAccess проверяет, что пользователь владелец бронирования или владелец мойки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkShopOwner(ctx, booking.ShopID, userID); err != nil {
		if errors.Is(err, ErrInternal) {
			return err
		}
		return ErrAccessDenied
	}

	return nil
}

// checkShopOwner проверяет, что пользователь является владельцем мойки
func (s *Service) checkShopOwner(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return err
	}

	if shop.OwnerID != userID {
		s.logger.Warn("checkShopOwner: user=%d is not the owner of shop=%d", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}
