package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	personnelRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/personnel"
	shopRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/shop"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	historyRepo   HistoryRepository
	shopRepo      ShopRepository
	personnelRepo PersonnelRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	newID         func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	shopRepo ShopRepository,
	personnelRepo PersonnelRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		historyRepo:   historyRepo,
		shopRepo:      shopRepo,
		personnelRepo: personnelRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		newID:         uuid.NewString,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию: у клиента не может быть двух незавершённых бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, shop=%d, date=%s, time=%s",
		req.UserID, req.ShopID, req.Date.Format(domain.DateFormat), req.ScheduleTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время не должны быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateSchedule(req.Date, req.ScheduleTime, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем мойку
	shop, err := uc.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. У клиента не должно быть незавершённых бронирований
		active, err := uc.bookingRepo.CountActiveByUserID(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count active bookings: %v", err)
			return fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
		}
		if active > 0 {
			uc.logger.Warn("CreateBooking: user id=%d already has %d active booking(s)", req.UserID, active)
			return ErrActiveBookingExists
		}

		// 4.2. Проверка выбранного сотрудника
		if req.PersonnelID != nil {
			if err := uc.checkPersonnel(txCtx, req); err != nil {
				return err
			}
		}

		// 4.3. Создаём бронирование
		booking := &domain.Booking{
			AppointmentID: uc.newID(),
			UserID:        req.UserID,
			ShopID:        req.ShopID,
			PersonnelID:   req.PersonnelID,
			ServiceName:   strings.TrimSpace(req.ServiceName),
			Price:         domain.RoundMoney(req.Price),
			ScheduleDate:  req.Date,
			ScheduleTime:  req.ScheduleTime,
			Status:        domain.StatusPending,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.4. Первая запись в истории статусов
		_, err = uc.historyRepo.Create(txCtx, &domain.StatusHistory{
			AppointmentID: created.AppointmentID,
			NewStatus:     domain.StatusPending,
			ChangedBy:     domain.ChangedByCustomer(req.UserID),
			ChangedAt:     now,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to write history: %v", err)
			return fmt.Errorf("%w: failed to write history: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.AppointmentID)

	return &Response{
		AppointmentID: result.AppointmentID,
		UserID:        result.UserID,
		ShopID:        result.ShopID,
		ShopName:      shop.Name,
		PersonnelID:   result.PersonnelID,
		ServiceName:   result.ServiceName,
		Price:         result.Price,
		ScheduleDate:  result.ScheduleDate,
		ScheduleTime:  result.ScheduleTime,
		Status:        result.Status,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// checkPersonnel проверяет, что сотрудник работает в мойке и свободен в выбранное время
func (uc *UseCase) checkPersonnel(ctx context.Context, req *Request) error {
	personnel, err := uc.personnelRepo.GetByID(ctx, *req.PersonnelID)
	if err != nil {
		if errors.Is(err, personnelRepo.ErrPersonnelNotFound) {
			uc.logger.Warn("CreateBooking: personnel id=%d not found", *req.PersonnelID)
			return ErrPersonnelNotFound
		}
		uc.logger.Error("CreateBooking: failed to get personnel id=%d: %v", *req.PersonnelID, err)
		return fmt.Errorf("%w: failed to get personnel: %v", ErrInternal, err)
	}

	if personnel.ShopID != req.ShopID {
		uc.logger.Warn("CreateBooking: personnel id=%d belongs to shop id=%d", personnel.ID, personnel.ShopID)
		return ErrPersonnelNotFound
	}

	if err := personnel.CheckAvailability(req.Date, req.ScheduleTime); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		switch {
		case errors.Is(err, domain.ErrDayUnavailable):
			return fmt.Errorf("%w: %v", ErrDayUnavailable, err)
		case errors.Is(err, domain.ErrTimeUnavailable):
			return fmt.Errorf("%w: %v", ErrTimeUnavailable, err)
		default:
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return nil
}
