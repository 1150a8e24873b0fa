package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseMoment accepts RFC3339 or a bare YYYY-MM-DD date (midnight UTC).
// Empty input yields def. Results are always in UTC.
func ParseMoment(raw string, def time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", raw)
}
