package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarwashBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"appointment_id",
	"user_id",
	"shop_id",
	"personnel_id",
	"service_name",
	"price",
	"schedule_date",
	"schedule_time",
	"status",
	"payment_status",
	"paid_amount",
	"started_at",
	"completed_at",
	"notes",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// appointment_id генерируется в usecase, version/created_at/updated_at возвращает БД.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var paymentStatus interface{}
	if booking.PaymentStatus != nil {
		paymentStatus = string(*booking.PaymentStatus)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"appointment_id",
			"user_id",
			"shop_id",
			"personnel_id",
			"service_name",
			"price",
			"schedule_date",
			"schedule_time",
			"status",
			"payment_status",
			"paid_amount",
			"notes",
		).
		Values(
			booking.AppointmentID,
			booking.UserID,
			booking.ShopID,
			booking.PersonnelID,
			booking.ServiceName,
			booking.Price,
			booking.ScheduleDate,
			booking.ScheduleTime,
			string(booking.Status),
			paymentStatus,
			booking.PaidAmount,
			booking.Notes,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по appointment_id
func (r *Repository) GetByID(ctx context.Context, appointmentID string) (*domain.Booking, error) {
	return r.getByID(ctx, appointmentID, false, "GetByID")
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, appointmentID string) (*domain.Booking, error) {
	return r.getByID(ctx, appointmentID, dbmetrics.IsInTransaction(ctx), "GetByIDForUpdate")
}

func (r *Repository) getByID(ctx context.Context, appointmentID string, lock bool, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"appointment_id": appointmentID})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("schedule_date DESC", "schedule_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveByUserID считает бронирования пользователя в незавершённых статусах
func (r *Repository) CountActiveByUserID(ctx context.Context, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByUserID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByShopWithFilter получает бронирования мойки с фильтрацией по периоду и статусу.
// Без явного статуса и без IncludeInactive завершённые бронирования не возвращаются.
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"schedule_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"schedule_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	// Для конкретной даты сортируем по времени, иначе сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("schedule_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("schedule_date DESC", "schedule_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetStalePending возвращает id бронирований, оставшихся в Pending с датой раньше before
func (r *Repository) GetStalePending(ctx context.Context, before time.Time, limit uint64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_id").
		From("bookings").
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"schedule_date": before}).
		OrderBy("schedule_date ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStalePending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStalePending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetStalePending - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStalePending - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update частично обновляет бронирование.
// Обновление проходит только если version в БД совпадает с expectedVersion; возвращает новую версию.
func (r *Repository) Update(ctx context.Context, appointmentID string, expectedVersion int64, upd domain.BookingUpdate) (int64, error) {
	if upd.IsEmpty() {
		return 0, ErrEmptyUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(updateMap(upd)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"appointment_id": appointmentID, "version": expectedVersion}).
		Suffix("RETURNING version").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var version int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return version, nil
}

// GetContact получает имя и email клиента и название мойки для уведомления
func (r *Repository) GetContact(ctx context.Context, appointmentID string) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.appointment_id", "u.full_name", "u.email", "s.shop_name").
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("shops s ON s.id = b.shop_id").
		Where(squirrel.Eq{"b.appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetContact - build select query: %v", ErrBuildQuery, err)
	}

	var contact domain.Contact
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contact.AppointmentID,
		&contact.CustomerName,
		&contact.CustomerEmail,
		&contact.ShopName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetContact - scan contact: %v", ErrScanRow, err)
	}

	return &contact, nil
}

func updateMap(upd domain.BookingUpdate) map[string]interface{} {
	set := make(map[string]interface{})
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.PaymentStatus != nil {
		set["payment_status"] = string(*upd.PaymentStatus)
	}
	if upd.PaidAmount != nil {
		set["paid_amount"] = *upd.PaidAmount
	}
	if upd.PersonnelID != nil {
		set["personnel_id"] = *upd.PersonnelID
	}
	if upd.ScheduleDate != nil {
		set["schedule_date"] = *upd.ScheduleDate
	}
	if upd.ScheduleTime != nil {
		set["schedule_time"] = string(*upd.ScheduleTime)
	}
	if upd.StartedAt != nil {
		set["started_at"] = *upd.StartedAt
	}
	if upd.CompletedAt != nil {
		set["completed_at"] = *upd.CompletedAt
	}
	return set
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		status        string
		personnelID   sql.NullInt64
		paymentStatus sql.NullString
		startedAt     sql.NullTime
		completedAt   sql.NullTime
		notes         sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&booking.AppointmentID,
		&booking.UserID,
		&booking.ShopID,
		&personnelID,
		&booking.ServiceName,
		&booking.Price,
		&booking.ScheduleDate,
		&booking.ScheduleTime,
		&status,
		&paymentStatus,
		&booking.PaidAmount,
		&startedAt,
		&completedAt,
		&notes,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Старые записи могут хранить статус в устаревшем написании
	booking.Status = domain.NormalizeStatus(status)

	if personnelID.Valid {
		booking.PersonnelID = &personnelID.Int64
	}
	if paymentStatus.Valid {
		ps := domain.PaymentStatus(paymentStatus.String)
		booking.PaymentStatus = &ps
	}
	if startedAt.Valid {
		booking.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		booking.CompletedAt = &completedAt.Time
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
