package personnel

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "shop_id", "full_name", "day_available", "time_available"}
	mock.ExpectQuery("SELECT (.+) FROM personnel WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(2), int64(3), "Pedro", "Mon,Tue", "8:00 AM - 3:00 PM"))
	mock.ExpectQuery("FROM personnel").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(cols))

	repo := NewRepository(db)

	p, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ShopID)
	assert.Equal(t, "8:00 AM - 3:00 PM", p.TimeAvailable)

	_, err = repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPersonnelNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
