package cancel_booking

import (
	"context"

	updateStatus "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

// StatusUpdater отмена выполняется обычной сменой статуса с проверкой владельца
type StatusUpdater interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
