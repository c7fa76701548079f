package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarwashBooking/pkg/psqlbuilder"
)

// Repository репозиторий платежей. Платежи только добавляются и никогда не изменяются.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("payment_id", "appointment_id", "user_id", "amount", "method", "payment_status", "receipt_url").
		Values(
			p.PaymentID,
			p.AppointmentID,
			p.UserID,
			p.Amount,
			p.Method,
			string(p.PaymentStatus),
			p.ReceiptURL,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// SumByAppointment возвращает сумму всех платежей по бронированию (0, если платежей нет)
func (r *Repository) SumByAppointment(ctx context.Context, appointmentID string) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumByAppointment - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

// ListByAppointment возвращает платежи бронирования по времени создания
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"payment_id",
		"appointment_id",
		"user_id",
		"amount",
		"method",
		"payment_status",
		"receipt_url",
		"created_at",
	).
		From("payments").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var (
			p          domain.Payment
			status     string
			receiptURL sql.NullString
		)
		if err := rows.Scan(
			&p.PaymentID,
			&p.AppointmentID,
			&p.UserID,
			&p.Amount,
			&p.Method,
			&status,
			&receiptURL,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByAppointment - scan row: %v", ErrScanRow, err)
		}

		p.PaymentStatus = domain.PaymentStatus(status)
		if receiptURL.Valid {
			p.ReceiptURL = &receiptURL.String
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
