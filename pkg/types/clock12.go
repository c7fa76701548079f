package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock12 возвращается при некорректном 12-часовом времени ("8:00 AM")
var ErrInvalidClock12 = errors.New("invalid 12-hour clock value")

// ParseClock12 переводит 12-часовое время ("8:00 AM", "3 PM", "12:30am") в TimeString.
// 12 AM -> 00:00, 12 PM -> 12:00, к остальным PM часам прибавляется 12.
func ParseClock12(s string) (TimeString, error) {
	value := strings.ToUpper(strings.TrimSpace(s))

	var pm bool
	switch {
	case strings.HasSuffix(value, "AM"):
		value = strings.TrimSuffix(value, "AM")
	case strings.HasSuffix(value, "PM"):
		value = strings.TrimSuffix(value, "PM")
		pm = true
	default:
		return "", fmt.Errorf("%w: %q has no AM/PM suffix", ErrInvalidClock12, s)
	}
	value = strings.TrimSpace(value)

	hourPart, minutePart, hasMinutes := strings.Cut(value, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: bad hour in %q", ErrInvalidClock12, s)
	}

	minute := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return "", fmt.Errorf("%w: bad minutes in %q", ErrInvalidClock12, s)
		}
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return "", fmt.Errorf("%w: bad minutes in %q", ErrInvalidClock12, s)
		}
	}

	hour %= 12
	if pm {
		hour += 12
	}

	return NewTimeStringFromMinutes(hour*60 + minute)
}

// ParseClock12Range разбирает диапазон вида "8:00 AM - 3:00 PM"
func ParseClock12Range(s string) (start, end TimeString, err error) {
	left, right, ok := strings.Cut(s, "-")
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not a range", ErrInvalidClock12, s)
	}

	start, err = ParseClock12(left)
	if err != nil {
		return "", "", err
	}
	end, err = ParseClock12(right)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}
