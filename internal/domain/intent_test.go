package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntent_UnknownFieldsIgnored(t *testing.T) {
	var in Intent
	err := json.Unmarshal([]byte(`{"analysis_type":"Timing","mood":"curious","needs_transits":true}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "Timing", in.AnalysisType)
	assert.True(t, in.NeedsTransits)
}

func TestIntent_Normalize(t *testing.T) {
	in := Intent{
		AnalysisType:     " Career ",
		DivisionalCharts: []string{"d10", "D9", "9", "D5", "D60"},
		TransitRequest: &TransitRequest{
			StartYear: 2025, EndYear: 2026,
			YearMonthMap: map[string][]int{"2025": {13, 7, 6}, "2026": {0}},
		},
	}

	out, warnings := in.Normalize()

	assert.Equal(t, "career", out.AnalysisType)
	assert.Equal(t, []string{"D9", "D10", "D60"}, out.DivisionalCharts)
	assert.Equal(t, []int{9, 10, 60}, out.Divisions())
	require.NotNil(t, out.TransitRequest)
	assert.Equal(t, []int{6, 7}, out.TransitRequest.Months(2025))
	assert.Nil(t, out.TransitRequest.Months(2026))

	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrIntentIgnored))
	// the caller's intent is untouched
	assert.Equal(t, []int{13, 7, 6}, in.TransitRequest.YearMonthMap["2025"])
}

func TestIntent_NormalizeDropsBadTransitRange(t *testing.T) {
	out, warnings := Intent{TransitRequest: &TransitRequest{StartYear: 2030, EndYear: 2025}}.Normalize()
	assert.Nil(t, out.TransitRequest)
	require.Len(t, warnings, 1)
	assert.Equal(t, KindIntentIgnored, KindOf(warnings[0]))
}

func TestIntent_KeyAndFocusYear(t *testing.T) {
	a, _ := Intent{DivisionalCharts: []string{"D9", "d9"}}.Normalize()
	b, _ := Intent{DivisionalCharts: []string{"9"}}.Normalize()
	assert.Equal(t, a.Key(), b.Key())

	_, ok := a.FocusYear()
	assert.False(t, ok)

	c := Intent{TransitRequest: &TransitRequest{StartYear: 2027, EndYear: 2028}}
	year, ok := c.FocusYear()
	assert.True(t, ok)
	assert.Equal(t, 2027, year)
}

func TestParseDivision(t *testing.T) {
	n, err := ParseDivision("D45")
	require.NoError(t, err)
	assert.Equal(t, 45, n)

	_, err = ParseDivision("D8")
	assert.True(t, errors.Is(err, ErrInputMalformed))
}

func TestSplitDivisionCodes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"canonical", "D9", []string{"D9"}},
		{"mixed spelling", "d10, 60,D7", []string{"D10", "D60", "D7"}},
		{"space separated", "D2 D3", []string{"D2", "D3"}},
		{"duplicates dropped", "D9,d9,9", []string{"D9"}},
		{"unknown kept for reporting", "D9,D99", []string{"D9", "D99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitDivisionCodes(tt.input))
		})
	}
}
