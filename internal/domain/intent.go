package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// SupportedDivisions lists the divisional charts the engine can compute
var SupportedDivisions = []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}

// IsSupportedDivision reports whether Dn is computed by the engine
func IsSupportedDivision(n int) bool {
	for _, d := range SupportedDivisions {
		if d == n {
			return true
		}
	}
	return false
}

// ParseDivision accepts "D9", "d9" or "9"
func ParseDivision(code string) (int, error) {
	c := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(code)), "D")
	n, err := strconv.Atoi(c)
	if err != nil || !IsSupportedDivision(n) {
		return 0, Malformed("ParseDivision", code, "unsupported divisional chart")
	}
	return n, nil
}

// DivisionCode renders n as "Dn"
func DivisionCode(n int) string {
	return "D" + strconv.Itoa(n)
}

// SplitDivisionCodes parses a list such as "D9, d10 60" into canonical codes, dropping
// duplicates. Unrecognized entries are kept as given so Intent.Normalize reports them.
func SplitDivisionCodes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	var out []string
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		code := f
		if n, err := ParseDivision(f); err == nil {
			code = DivisionCode(n)
		}
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

// TransitRequest narrows the transit window to specific years and months
type TransitRequest struct {
	StartYear    int              `json:"startYear"`
	EndYear      int              `json:"endYear"`
	YearMonthMap map[string][]int `json:"yearMonthMap,omitempty"`
}

// Months returns the requested months for a year, nil meaning all twelve
func (r TransitRequest) Months(year int) []int {
	if r.YearMonthMap == nil {
		return nil
	}
	return r.YearMonthMap[strconv.Itoa(year)]
}

// Intent is the optional hint telling the engine what to emphasize.
// Unknown fields in the wire form are ignored.
type Intent struct {
	AnalysisType     string          `json:"analysis_type,omitempty"`
	Category         string          `json:"category,omitempty"`
	NeedsTransits    bool            `json:"needs_transits,omitempty"`
	TransitRequest   *TransitRequest `json:"transit_request,omitempty"`
	DivisionalCharts []string        `json:"divisional_charts,omitempty"`
	DetailedDashas   bool            `json:"detailed_dashas,omitempty"`
}

// Normalize validates the intent. Bad fields are dropped and reported as ErrIntentIgnored
// warnings; the returned intent is always usable.
func (i Intent) Normalize() (Intent, []error) {
	var warnings []error
	out := i
	out.AnalysisType = strings.ToLower(strings.TrimSpace(i.AnalysisType))
	out.Category = strings.ToLower(strings.TrimSpace(i.Category))

	if i.TransitRequest != nil {
		tr := *i.TransitRequest
		if tr.StartYear == 0 || tr.EndYear == 0 || tr.EndYear < tr.StartYear || tr.EndYear-tr.StartYear > 50 {
			warnings = append(warnings, &EngineError{Kind: ErrIntentIgnored, Op: "Intent.Normalize", Subject: "transit_request",
				Err: fmt.Errorf("invalid year range %d..%d", tr.StartYear, tr.EndYear)})
			out.TransitRequest = nil
		} else {
			clean := make(map[string][]int, len(tr.YearMonthMap))
			for year, months := range tr.YearMonthMap {
				var kept []int
				for _, m := range months {
					if m >= 1 && m <= 12 {
						kept = append(kept, m)
					}
				}
				if len(kept) > 0 {
					sort.Ints(kept)
					clean[year] = kept
				}
			}
			if len(clean) == 0 {
				clean = nil
			}
			tr.YearMonthMap = clean
			out.TransitRequest = &tr
		}
	}

	seen := make(map[int]bool)
	var divs []string
	for _, code := range i.DivisionalCharts {
		n, err := ParseDivision(code)
		if err != nil {
			warnings = append(warnings, &EngineError{Kind: ErrIntentIgnored, Op: "Intent.Normalize", Subject: code, Err: err})
			continue
		}
		if !seen[n] {
			seen[n] = true
			divs = append(divs, DivisionCode(n))
		}
	}
	sort.Slice(divs, func(a, b int) bool {
		na, _ := ParseDivision(divs[a])
		nb, _ := ParseDivision(divs[b])
		return na < nb
	})
	out.DivisionalCharts = divs

	return out, warnings
}

// Divisions returns the requested divisions as integers
func (i Intent) Divisions() []int {
	var out []int
	for _, code := range i.DivisionalCharts {
		if n, err := ParseDivision(code); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// FocusYear is the first year of the transit request, if any
func (i Intent) FocusYear() (int, bool) {
	if i.TransitRequest == nil {
		return 0, false
	}
	return i.TransitRequest.StartYear, true
}

// Key returns a canonical string for cache keys. Callers should normalize first.
func (i Intent) Key() string {
	b, err := json.Marshal(i)
	if err != nil {
		return ""
	}
	return string(b)
}
