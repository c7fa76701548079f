package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// CheckNotPast rejects a schedule whose date is before today or whose time
// today has already passed. Dates are compared by calendar day only.
func CheckNotPast(date time.Time, at types.TimeString, now time.Time) error {
	if dayOnly(date).Before(dayOnly(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(DateFormat))
	}

	if dayOnly(date).Equal(dayOnly(now)) && at.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: %s", ErrTimePassed, at)
	}

	return nil
}

func dayOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
