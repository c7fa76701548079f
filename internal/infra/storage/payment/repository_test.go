package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("p-1", "a-1", int64(7), 200.0, "GCash", "Partial", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	p, err := NewRepository(db).Create(context.Background(), &domain.Payment{
		PaymentID:     "p-1",
		AppointmentID: "a-1",
		UserID:        7,
		Amount:        200,
		Method:        "GCash",
		PaymentStatus: domain.PaymentPartial,
	})
	require.NoError(t, err)
	assert.Equal(t, createdAt, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SumByAppointment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE appointment_id = $1")).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(350.5))

	total, err := repo.SumByAppointment(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, 350.5, total)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("a-2").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.SumByAppointment(context.Background(), "a-2")
	assert.ErrorIs(t, err, ErrScanRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByAppointment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"payment_id", "appointment_id", "user_id", "amount", "method", "payment_status", "receipt_url", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE appointment_id = $1 ORDER BY created_at ASC")).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p-1", "a-1", int64(7), 200.0, "Cash", "Partial", nil, time.Now()).
			AddRow("p-2", "a-1", int64(7), 300.0, "GCash", "Paid", "https://receipts/2.png", time.Now()))

	payments, err := NewRepository(db).ListByAppointment(context.Background(), "a-1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Nil(t, payments[0].ReceiptURL)
	require.NotNil(t, payments[1].ReceiptURL)
	assert.Equal(t, domain.PaymentPaid, payments[1].PaymentStatus)
}
