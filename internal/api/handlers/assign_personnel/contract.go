package assign_personnel

import (
	"context"

	assignPersonnel "github.com/m04kA/SMC-CarwashBooking/internal/usecase/assign_personnel"
)

type AssignPersonnelUseCase interface {
	Execute(ctx context.Context, req *assignPersonnel.Request) (*assignPersonnel.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
