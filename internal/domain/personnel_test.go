package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
)

// 2025-03-10 is a Monday
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestPersonnel_CheckAvailability(t *testing.T) {
	p := Personnel{DayAvailable: "Mon, Wed,Fri", TimeAvailable: "8:00 AM - 3:00 PM"}

	tests := []struct {
		name string
		date time.Time
		at   types.TimeString
		err  error
	}{
		{"start bound", monday, "08:00", nil},
		{"end bound", monday, "15:00", nil},
		{"midday", monday, "12:30", nil},
		{"wednesday", monday.AddDate(0, 0, 2), "10:00", nil},
		{"before start", monday, "07:59", ErrTimeUnavailable},
		{"after end", monday, "15:01", ErrTimeUnavailable},
		{"tuesday", monday.AddDate(0, 0, 1), "10:00", ErrDayUnavailable},
		{"sunday", monday.AddDate(0, 0, -1), "10:00", ErrDayUnavailable},
		{"not padded", monday, "8:30", ErrInvalidScheduleTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckAvailability(tt.date, tt.at)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPersonnel_CheckAvailability_CaseInsensitiveDays(t *testing.T) {
	p := Personnel{DayAvailable: "mon,TUE", TimeAvailable: "12:00 AM - 11:59 PM"}
	assert.NoError(t, p.CheckAvailability(monday, "00:00"))
	assert.NoError(t, p.CheckAvailability(monday.AddDate(0, 0, 1), "23:59"))
}

func TestPersonnel_CheckAvailability_Malformed(t *testing.T) {
	for _, window := range []string{"", "8:00 AM", "8:00 - 15:00", "13:00 PM - 3:00 PM"} {
		p := Personnel{DayAvailable: "Mon", TimeAvailable: window}
		assert.ErrorIs(t, p.CheckAvailability(monday, "10:00"), ErrInvalidAvailability, window)
	}
}

func TestPersonnel_CheckAvailability_DayCheckedFirst(t *testing.T) {
	p := Personnel{DayAvailable: "Tue", TimeAvailable: "garbage"}
	assert.ErrorIs(t, p.CheckAvailability(monday, "10:00"), ErrDayUnavailable)
}
