package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarwashBooking/pkg/psqlbuilder"
)

// Repository журнал смен статусов бронирований (только добавление записей)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории статусов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись истории. changed_at берётся из записи, id возвращает БД.
func (r *Repository) Create(ctx context.Context, entry *domain.StatusHistory) (*domain.StatusHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("appointment_id", "old_status", "new_status", "changed_by", "reason", "changed_at").
		Values(
			entry.AppointmentID,
			string(entry.OldStatus),
			string(entry.NewStatus),
			entry.ChangedBy,
			entry.Reason,
			entry.ChangedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// GetLatestByAppointment возвращает последнюю запись истории или nil, если записей нет
func (r *Repository) GetLatestByAppointment(ctx context.Context, appointmentID string) (*domain.StatusHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectHistory().
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("changed_at DESC", "id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByAppointment - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListByAppointment возвращает историю бронирования в хронологическом порядке
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.StatusHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectHistory().
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.StatusHistory, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByAppointment - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func selectHistory() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "appointment_id", "old_status", "new_status", "changed_by", "reason", "changed_at").
		From("booking_status_history")
}

func scanEntry(row interface{ Scan(...interface{}) error }) (*domain.StatusHistory, error) {
	var (
		entry     domain.StatusHistory
		oldStatus string
		newStatus string
	)

	err := row.Scan(
		&entry.ID,
		&entry.AppointmentID,
		&oldStatus,
		&newStatus,
		&entry.ChangedBy,
		&entry.Reason,
		&entry.ChangedAt,
	)
	if err != nil {
		return nil, err
	}

	// old_status пустой у записи о создании бронирования
	if oldStatus != "" {
		entry.OldStatus = domain.NormalizeStatus(oldStatus)
	}
	entry.NewStatus = domain.NormalizeStatus(newStatus)

	return &entry, nil
}
