package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// narrationKeys are explanation blobs that belong to the caller's prompt, not the context
var narrationKeys = map[string]bool{
	"methodology": true,
}

// advancedSections are collapsed when they carry nothing
var advancedSections = []string{"yogas", "special_points", "kp", "varshphal", "dasha_conflicts", "critical_windows"}

// alwaysKept divisional charts survive any intent filter
var alwaysKept = []int{1, 9}

// normalize renders v as a JSON-shaped tree with every float rounded to two decimals
// and narration dropped.
func normalize(v interface{}) (Fragment, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fragment: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree map[string]interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode fragment: %w", err)
	}

	return round(tree).(map[string]interface{}), nil
}

func round(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		for k, v := range n {
			if narrationKeys[k] {
				delete(n, k)
				continue
			}
			n[k] = round(v)
		}
		return n
	case []interface{}:
		for i, v := range n {
			n[i] = round(v)
		}
		return n
	case json.Number:
		s := n.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := n.Int64(); err == nil {
				return i
			}
		}
		f, err := n.Float64()
		if err != nil {
			return s
		}
		return formulas.Round2(f)
	default:
		return n
	}
}

// pruneStatic applies the static rules that do not depend on the intent
func pruneStatic(f Fragment) {
	// Rule 1: per-planet ashtakavargas go when the SAV totals are present
	if av, ok := f["ashtakavarga"].(map[string]interface{}); ok {
		if _, hasSAV := av["sav"]; hasSAV {
			delete(av, "bav")
		}
	}
	collapseSections(f)
}

// collapseSections removes empty leaves from the advanced sections, and the section
// itself when nothing is left
func collapseSections(f Fragment) {
	for _, name := range advancedSections {
		v, ok := f[name]
		if !ok {
			continue
		}
		if c := collapse(v); c == nil {
			delete(f, name)
		} else {
			f[name] = c
		}
	}
}

func collapse(node interface{}) interface{} {
	switch n := node.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		for k, v := range n {
			if c := collapse(v); c == nil {
				delete(n, k)
			} else {
				n[k] = c
			}
		}
		if len(n) == 0 {
			return nil
		}
		return n
	case []interface{}:
		if len(n) == 0 {
			return nil
		}
		return n
	case string:
		if n == "" {
			return nil
		}
		return n
	default:
		return n
	}
}

// forIntent returns a shallow copy of the static fragment with the divisional charts
// and their dignities narrowed to the intent. D1 and D9 are always kept; no intent
// or an empty list keeps everything.
func forIntent(f Fragment, intent *domain.Intent) Fragment {
	out := make(Fragment, len(f))
	for k, v := range f {
		out[k] = v
	}
	if intent == nil || len(intent.DivisionalCharts) == 0 {
		return out
	}

	keep := make(map[string]bool)
	for _, n := range alwaysKept {
		keep[domain.DivisionCode(n)] = true
	}
	for _, n := range intent.Divisions() {
		keep[domain.DivisionCode(n)] = true
	}

	for _, section := range []string{"divisional_charts", "dignities"} {
		charts, ok := f[section].(map[string]interface{})
		if !ok {
			continue
		}
		filtered := make(map[string]interface{}, len(keep))
		for code, c := range charts {
			if keep[code] {
				filtered[code] = c
			}
		}
		out[section] = filtered
	}
	return out
}
