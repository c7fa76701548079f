package pay_balance

import (
	"context"

	recordPayment "github.com/m04kA/SMC-CarwashBooking/internal/usecase/record_payment"
)

type PayBalanceUseCase interface {
	ExecuteRemaining(ctx context.Context, req *recordPayment.RemainingRequest) (*recordPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
