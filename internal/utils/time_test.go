package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoment(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"empty uses default", "  ", def, false},
		{"bare date", "2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 utc", "2025-06-15T12:00:00Z", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), false},
		{"rfc3339 offset", "2025-06-15T17:30:00+05:30", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), false},
		{"garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoment(tt.input, def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
