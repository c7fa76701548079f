package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("8:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("abc")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("08:00").Validate())
	assert.Error(t, TimeString("8:00").Validate())
	assert.Error(t, TimeString("").Validate())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_IsWithin(t *testing.T) {
	start, end := TimeString("08:00"), TimeString("15:00")

	assert.True(t, TimeString("08:00").IsWithin(start, end))
	assert.True(t, TimeString("15:00").IsWithin(start, end))
	assert.False(t, TimeString("07:59").IsWithin(start, end))
	assert.False(t, TimeString("15:01").IsWithin(start, end))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("09:30:00")))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan("14:05"))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestParseClock12(t *testing.T) {
	tests := []struct {
		in   string
		want TimeString
	}{
		{"8:00 AM", "08:00"},
		{"3:00 PM", "15:00"},
		{"12:00 AM", "00:00"},
		{"12:00 PM", "12:00"},
		{"12:30am", "00:30"},
		{" 7 pm ", "19:00"},
		{"11:59 PM", "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock12(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClock12_Invalid(t *testing.T) {
	for _, in := range []string{"8:00", "13:00 PM", "0:00 AM", "8:7 AM", "8:60 AM", "noon"} {
		_, err := ParseClock12(in)
		assert.ErrorIs(t, err, ErrInvalidClock12, in)
	}
}

func TestParseClock12Range(t *testing.T) {
	start, end, err := ParseClock12Range("8:00 AM - 3:00 PM")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:00"), start)
	assert.Equal(t, TimeString("15:00"), end)

	_, _, err = ParseClock12Range("8:00 AM")
	assert.ErrorIs(t, err, ErrInvalidClock12)
}
