package reschedule_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// validateRequest разбирает новую дату и время
func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if strings.TrimSpace(req.AppointmentID) == "" {
		return time.Time{}, "", fmt.Errorf("%w: appointmentID is required", ErrValidation)
	}

	date, err := time.Parse(domain.DateFormat, req.ScheduleDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: schedule_date must be in format YYYY-MM-DD", ErrValidation)
	}

	at, err := types.NewTimeStringFromString(req.ScheduleTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: schedule_time must be in format HH:MM", ErrValidation)
	}

	return date, at, nil
}
