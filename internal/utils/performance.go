package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Default thresholds above which a measured operation is reported
const (
	DefaultSlowThreshold = 10 * time.Second
	DefaultInfoThreshold = 2 * time.Second
)

// Timer measures the duration of one operation
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
	slow  time.Duration // logged at Warn above this
	info  time.Duration // logged at Info above this
}

// NewTimer starts a timer with the default thresholds
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
		slow:  DefaultSlowThreshold,
		info:  DefaultInfoThreshold,
	}
}

// WithThreshold overrides the slow threshold; the info threshold becomes a fifth of it
func (t *Timer) WithThreshold(slow time.Duration) *Timer {
	t.slow = slow
	t.info = slow / 5
	return t
}

// Stop logs the duration and returns it
func (t *Timer) Stop() time.Duration {
	return t.StopWithContext(nil)
}

// StopWithContext logs the duration with additional fields
func (t *Timer) StopWithContext(fields map[string]interface{}) time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	switch {
	case duration > t.slow:
		event = t.log.Warn()
	case duration > t.info:
		event = t.log.Info()
	}

	event = event.
		Str("operation", t.name).
		Dur("duration_ms", duration)

	for key, value := range fields {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	if duration > t.slow {
		event.Msg("Slow operation detected")
	} else {
		event.Msg("Performance measurement")
	}

	return duration
}

// OperationTimer provides a defer-friendly way to measure operation duration
//
// Usage:
//
//	func Sweep() {
//	    defer utils.OperationTimer("transit_sweep", log)()
//	}
func OperationTimer(operation string, log zerolog.Logger) func() {
	t := NewTimer(operation, log)
	return func() {
		t.Stop()
	}
}

// MeasureDBQuery measures database query performance
func MeasureDBQuery(queryName string, log zerolog.Logger) func(rowsAffected int64) {
	start := time.Now()

	return func(rowsAffected int64) {
		duration := time.Since(start)

		log.Debug().
			Str("query", queryName).
			Dur("duration_ms", duration).
			Int64("rows_affected", rowsAffected).
			Msg("Database query completed")

		if duration > 5*time.Second {
			log.Warn().
				Str("query", queryName).
				Dur("duration", duration).
				Int64("rows_affected", rowsAffected).
				Msg("Slow database query detected")
		}
	}
}
