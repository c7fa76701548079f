package decide_refund

import (
	"context"

	decideRefund "github.com/m04kA/SMC-CarwashBooking/internal/usecase/decide_refund"
)

type DecideRefundUseCase interface {
	Execute(ctx context.Context, req *decideRefund.Request) (*decideRefund.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
