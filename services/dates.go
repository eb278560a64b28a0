package services

import (
	"fmt"
	"time"
)

// Calendar days are UTC throughout the platform. Streak correctness
// depends on every writer agreeing on when "today" rolls over, so dates
// travel as YYYY-MM-DD strings and are parsed in UTC only at the edges.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Today returns the current UTC calendar day.
func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidArgument, s)
	}
	return t, nil
}

// PrevDay returns the calendar day before the given date.
func PrevDay(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(dateLayout), nil
}

// ValidateTime validates an HH:MM clock time. Times stored in this format
// compare correctly as plain strings, which the conflict predicate relies on.
func ValidateTime(s string) error {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return fmt.Errorf("%w: invalid time %q", ErrInvalidArgument, s)
	}
	return nil
}
