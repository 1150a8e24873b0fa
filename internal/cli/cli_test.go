package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
)

var s1Flags = []string{
	"--date", "1980-04-02", "--time", "14:55",
	"--lat", "29.2397", "--lon", "75.8175", "--tz", "+05:30",
	"--compact",
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("JYOTISH_DATA_DIR", t.TempDir())

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jyotish "+Version)
}

func TestChartCommand(t *testing.T) {
	out, _, err := run(t, append([]string{"chart", "--charts", "D10"}, s1Flags...)...)
	require.NoError(t, err)

	var frag map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &frag))

	vargas := frag["divisional_charts"].(map[string]interface{})
	assert.Len(t, vargas, 3)
	assert.Contains(t, vargas, "D10")

	chart := frag["chart"].(map[string]interface{})
	assert.NotEmpty(t, chart)
}

func TestDashaCommand(t *testing.T) {
	args := append([]string{"dasha", "--as-of", "2025-06-15", "--from", "2024-01-01", "--to", "2027-01-01"}, s1Flags...)
	out, _, err := run(t, args...)
	require.NoError(t, err)

	var frag map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &frag))
	assert.Contains(t, frag["current"], "vimshottari")
	assert.Contains(t, frag["timelines"], "chara")
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing birth", []string{"chart"}, "--date and --time are required"},
		{"bad depth", append([]string{"dasha", "--depth", "7"}, s1Flags...), "depth"},
		{"bad as-of", append([]string{"context", "--as-of", "soon"}, s1Flags...), "as-of"},
		{"bad intent", append([]string{"context", "--intent", "{"}, s1Flags...), "intent"},
		{"bad transit window", append([]string{"transits", "--from", "2025-06-01", "--to", "2025-01-01"}, s1Flags...), "window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, domain.KindInputMalformed, domain.KindOf(err))
		})
	}
}

func TestParseIntent(t *testing.T) {
	intent, err := parseIntent("")
	require.NoError(t, err)
	assert.Nil(t, intent)

	intent, err = parseIntent(`{"divisional_charts":["D10"],"detailed_dashas":true}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"D10"}, intent.DivisionalCharts)
	assert.True(t, intent.DetailedDashas)

	path := filepath.Join(t.TempDir(), "intent.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"needs_transits":true}`), 0o644))
	intent, err = parseIntent("@" + path)
	require.NoError(t, err)
	assert.True(t, intent.NeedsTransits)

	_, err = parseIntent("@" + filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
