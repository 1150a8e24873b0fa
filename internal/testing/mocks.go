package testing

import (
	"sync"
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
)

// MockEphemeris wraps a real ephemeris and fails on demand
type MockEphemeris struct {
	mu       sync.RWMutex
	inner    ephemeris.Ephemeris
	err      error
	failFrom float64 // Position fails for jd >= failFrom when non-zero
	calls    int
}

// NewMockEphemeris creates a mock over the built-in ephemeris
func NewMockEphemeris() *MockEphemeris {
	return &MockEphemeris{inner: NewEphemeris()}
}

// SetError makes every call fail with err
func (m *MockEphemeris) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FailFrom makes Position fail for every instant at or after jd
func (m *MockEphemeris) FailFrom(jd float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFrom = jd
	m.err = err
}

// Calls returns how many Position calls were made
func (m *MockEphemeris) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *MockEphemeris) failing(jd float64) error {
	if m.err == nil {
		return nil
	}
	if m.failFrom != 0 && jd < m.failFrom {
		return nil
	}
	return m.err
}

// Position returns the inner position unless a failure is configured
func (m *MockEphemeris) Position(jd float64, body domain.Planet, flags ephemeris.Flag) (ephemeris.Position, error) {
	m.mu.Lock()
	m.calls++
	err := m.failing(jd)
	m.mu.Unlock()
	if err != nil {
		return ephemeris.Position{}, err
	}
	return m.inner.Position(jd, body, flags)
}

// Ayanamsa delegates to the inner ephemeris
func (m *MockEphemeris) Ayanamsa(jd float64) float64 {
	return m.inner.Ayanamsa(jd)
}

// Houses delegates unless a global failure is configured
func (m *MockEphemeris) Houses(jd, lat, lon float64, flags ephemeris.Flag) (ephemeris.HouseFrame, error) {
	m.mu.RLock()
	err := m.failing(jd)
	m.mu.RUnlock()
	if err != nil {
		return ephemeris.HouseFrame{}, err
	}
	return m.inner.Houses(jd, lat, lon, flags)
}

// SunRiseSet delegates to the inner ephemeris
func (m *MockEphemeris) SunRiseSet(jd, lat, lon float64) (ephemeris.RiseSet, error) {
	return m.inner.SunRiseSet(jd, lat, lon)
}

// FixedResolver resolves every location to one offset
type FixedResolver struct {
	OffsetMinutes int
	Label         string
	Err           error
}

// Resolve returns the configured offset
func (r FixedResolver) Resolve(_, _ float64, _ time.Time) (int, string, error) {
	if r.Err != nil {
		return 0, "", r.Err
	}
	return r.OffsetMinutes, r.Label, nil
}
