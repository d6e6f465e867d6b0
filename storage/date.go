package storage

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate reads a DateLayout date. A day between 1 and 31 that is past the
// end of its month resolves to the month's last day, so 31/4/2024 is
// 30/4/2024 and 30/2/2023 is 28/2/2023.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, s)
	if err == nil {
		return date, nil
	}

	dayField, rest, ok := strings.Cut(s, "/")
	if !ok || len(dayField) == 0 || len(dayField) > 2 || strings.Trim(dayField, "0123456789") != "" {
		return time.Time{}, err
	}
	day, convErr := strconv.Atoi(dayField)
	if convErr != nil || day < 1 || day > 31 {
		return time.Time{}, err
	}

	first, firstErr := time.Parse(DateLayout, "1/"+rest)
	if firstErr != nil {
		return time.Time{}, err
	}
	last := first.AddDate(0, 1, -1)
	if day < last.Day() {
		return time.Time{}, err
	}
	return last, nil
}
