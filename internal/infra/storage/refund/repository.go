package refund

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

var refundColumns = []string{
	"id",
	"customer",
	"amount",
	"reason",
	"booking_id",
	"owner_id",
	"status",
	"requested_at",
	"decided_at",
}

// Repository репозиторий заявок на возврат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория возвратов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку в статусе Pending
func (r *Repository) Create(ctx context.Context, req *domain.RefundRequest) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refunds").
		Columns("customer", "amount", "reason", "booking_id", "owner_id", "status").
		Values(req.Customer, req.Amount, req.Reason, req.BookingID, req.OwnerID, string(req.Status)).
		Suffix("RETURNING id, requested_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.RequestedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return req, nil
}

// GetByIDForUpdate получает заявку; внутри транзакции строка блокируется
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRefund(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRefundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan refund: %v", ErrScanRow, err)
	}

	return req, nil
}

// UpdateStatus фиксирует решение по заявке
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RefundStatus, decidedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("refunds").
		Set("status", string(status)).
		Set("decided_at", decidedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRefundNotFound
	}

	return nil
}

// ExistsPendingForBooking проверяет, есть ли по бронированию нерассмотренная заявка
func (r *Repository) ExistsPendingForBooking(ctx context.Context, bookingID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("refunds").
		Where(squirrel.Eq{"booking_id": bookingID, "status": string(domain.RefundPending)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsPendingForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsPendingForBooking - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// ListByOwner возвращает заявки, адресованные владельцу мойки (опционально по статусу)
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, status *domain.RefundStatus) ([]*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("requested_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	refunds := make([]*domain.RefundRequest, 0)
	for rows.Next() {
		req, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		refunds = append(refunds, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return refunds, nil
}

func scanRefund(row interface{ Scan(...interface{}) error }) (*domain.RefundRequest, error) {
	var (
		req       domain.RefundRequest
		status    string
		decidedAt sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.Customer,
		&req.Amount,
		&req.Reason,
		&req.BookingID,
		&req.OwnerID,
		&status,
		&req.RequestedAt,
		&decidedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Status = domain.RefundStatus(status)
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}

	return &req, nil
}
