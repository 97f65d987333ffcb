package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatDate renders t as a calendar date (YYYY-MM-DD) in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Yesterday returns the calendar date before t, formatted YYYY-MM-DD.
// AddDate is used instead of subtracting 24h so DST shifts cannot skip a day.
func Yesterday(t time.Time) string {
	return FormatDate(StartOfDay(t).AddDate(0, 0, -1))
}

// ParseDate parses a calendar date in the standard format or the legacy
// Date.toDateString() layout, returning midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range []string{constants.DateFormat, constants.LegacyDateFormat} {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateStr)
}

// NormalizeDate rewrites any accepted date representation into YYYY-MM-DD.
// Empty input stays empty.
func NormalizeDate(dateStr string) (string, error) {
	if strings.TrimSpace(dateStr) == "" {
		return "", nil
	}
	t, err := ParseDate(dateStr, time.UTC)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
