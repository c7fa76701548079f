package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// Personnel is a carwash worker with a declared availability window
type Personnel struct {
	ID       int64
	ShopID   int64
	FullName string

	// DayAvailable is a comma-separated list of weekday abbreviations ("Mon,Tue,Wed")
	DayAvailable string
	// TimeAvailable is a 12-hour range ("8:00 AM - 3:00 PM")
	TimeAvailable string
}

// WorksOn returns true if the weekday abbreviation of date is listed in DayAvailable
func (p *Personnel) WorksOn(date time.Time) bool {
	day := date.Weekday().String()[:3]
	for _, token := range strings.Split(p.DayAvailable, ",") {
		if strings.EqualFold(strings.TrimSpace(token), day) {
			return true
		}
	}
	return false
}

// Window returns the declared availability range as HH:MM bounds
func (p *Personnel) Window() (start, end types.TimeString, err error) {
	start, end, err = types.ParseClock12Range(p.TimeAvailable)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
	}
	return start, end, nil
}

// CheckAvailability validates a slot against the personnel's declared days and hours.
// Both bounds of the hours range are inclusive. No timezone conversion is made.
func (p *Personnel) CheckAvailability(date time.Time, at types.TimeString) error {
	if !p.WorksOn(date) {
		return fmt.Errorf("%w: %s not in %q", ErrDayUnavailable, date.Weekday().String()[:3], p.DayAvailable)
	}

	start, end, err := p.Window()
	if err != nil {
		return err
	}

	if err := at.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScheduleTime, err)
	}

	if !at.IsWithin(start, end) {
		return fmt.Errorf("%w: %s outside %s-%s", ErrTimeUnavailable, at, start, end)
	}
	return nil
}
