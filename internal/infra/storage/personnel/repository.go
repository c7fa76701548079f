package personnel

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

// Repository репозиторий сотрудников моек (только чтение, данные ведёт сервис моек)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Personnel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "full_name", "day_available", "time_available").
		From("personnel").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Personnel
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ShopID,
		&p.FullName,
		&p.DayAvailable,
		&p.TimeAvailable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPersonnelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan personnel: %v", ErrScanRow, err)
	}

	return &p, nil
}

// ListByShop возвращает всех сотрудников мойки
func (r *Repository) ListByShop(ctx context.Context, shopID int64) ([]*domain.Personnel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "full_name", "day_available", "time_available").
		From("personnel").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("full_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.Personnel, 0)
	for rows.Next() {
		var p domain.Personnel
		if err := rows.Scan(&p.ID, &p.ShopID, &p.FullName, &p.DayAvailable, &p.TimeAvailable); err != nil {
			return nil, fmt.Errorf("%w: ListByShop - scan row: %v", ErrScanRow, err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByShop - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}
