package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error raised by the engine wraps exactly one of these.
var (
	// ErrInputMalformed indicates unparseable or out-of-range caller input.
	ErrInputMalformed = errors.New("input malformed")
	// ErrEphemerisRange indicates a date outside the supported ephemeris span.
	ErrEphemerisRange = errors.New("ephemeris range exceeded")
	// ErrComputationInvariant indicates a computed value violated an internal invariant.
	ErrComputationInvariant = errors.New("computation invariant violated")
	// ErrFeatureUnavailable indicates one optional feature could not be produced.
	ErrFeatureUnavailable = errors.New("feature unavailable")
	// ErrIntentIgnored indicates an intent parameter that was dropped.
	ErrIntentIgnored = errors.New("intent parameter ignored")
)

// ErrorKind is the machine-readable name of an error kind
type ErrorKind string

const (
	KindInputMalformed       ErrorKind = "input_malformed"
	KindEphemerisRange       ErrorKind = "ephemeris_range"
	KindComputationInvariant ErrorKind = "computation_invariant"
	KindFeatureUnavailable   ErrorKind = "feature_unavailable"
	KindIntentIgnored        ErrorKind = "intent_ignored"
	KindInternal             ErrorKind = "internal"
)

// EngineError carries the failing operation and subject alongside the kind
type EngineError struct {
	Kind    error  // One of the Err* sentinels above
	Op      string // Operation that failed, e.g. "chart.Calculate"
	Subject string // What was being processed, e.g. "Saturn" or "D60"
	Err     error  // Underlying cause, may be nil
}

func (e *EngineError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Subject != "" {
		msg += " (" + e.Subject + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *EngineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, subject, format string, args ...any) error {
	var cause error
	if format != "" {
		cause = fmt.Errorf(format, args...)
	}
	return &EngineError{Kind: kind, Op: op, Subject: subject, Err: cause}
}

// Malformed builds an input-malformed error
func Malformed(op, subject, format string, args ...any) error {
	return newError(ErrInputMalformed, op, subject, format, args...)
}

// OutOfRange builds an ephemeris-range error
func OutOfRange(op, subject, format string, args ...any) error {
	return newError(ErrEphemerisRange, op, subject, format, args...)
}

// Invariant builds a computation-invariant error
func Invariant(op, subject, format string, args ...any) error {
	return newError(ErrComputationInvariant, op, subject, format, args...)
}

// Unavailable wraps err as a feature-unavailable error for the named feature
func Unavailable(feature string, err error) error {
	return &EngineError{Kind: ErrFeatureUnavailable, Op: feature, Err: err}
}

// KindOf classifies any error into one of the engine kinds
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputMalformed):
		return KindInputMalformed
	case errors.Is(err, ErrEphemerisRange):
		return KindEphemerisRange
	case errors.Is(err, ErrComputationInvariant):
		return KindComputationInvariant
	case errors.Is(err, ErrIntentIgnored):
		return KindIntentIgnored
	case errors.Is(err, ErrFeatureUnavailable):
		return KindFeatureUnavailable
	default:
		return KindInternal
	}
}

// AnalysisError is one entry of the context's analysis_errors list
type AnalysisError struct {
	Feature string    `json:"feature"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewAnalysisError records a failed optional feature
func NewAnalysisError(feature string, err error) AnalysisError {
	return AnalysisError{Feature: feature, Kind: KindOf(err), Message: err.Error()}
}
