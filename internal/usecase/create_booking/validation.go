package create_booking

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.PersonnelID != nil && *req.PersonnelID <= 0 {
		return fmt.Errorf("%w: personnelID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ServiceName)
	if name == "" || len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name is required and must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if req.Price < 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ScheduleTime.IsZero() {
		return fmt.Errorf("%w: scheduleTime is required", ErrInvalidInput)
	}

	if err := req.ScheduleTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid scheduleTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSchedule проверяет, что дата и время бронирования ещё не прошли
func validateSchedule(date time.Time, at types.TimeString, now time.Time) error {
	err := domain.CheckNotPast(date, at, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDateInPast):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	default:
		return fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	}
}
