// Package timing holds the dynamic overlays that combine natal promise with the
// running periods and current transits.
package timing

import (
	"fmt"
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ashtakavarga"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/transit"
)

// Tara is a transiting planet's position among the nine taras of the natal Moon
type Tara struct {
	Planet         domain.Planet `json:"planet"`
	Nakshatra      string        `json:"nakshatra"`
	Number         int           `json:"tara"`
	Name           string        `json:"tara_name"`
	Malefic        bool          `json:"malefic"`
	CycleFromJanma int           `json:"cycle"` // 1..3, the round of nine from the birth star
}

// TaraOf counts the tara of a transiting nakshatra from the birth nakshatra
func TaraOf(birth, transit domain.Nakshatra) (number, cycle int) {
	count := ((int(transit)-int(birth))%27 + 27) % 27
	return count%9 + 1, count/9 + 1
}

// Navatara places each transiting longitude in the taras counted from the natal Moon
func Navatara(natalMoon float64, transits map[domain.Planet]float64) []Tara {
	birth, _ := domain.NakshatraOf(natalMoon)
	out := make([]Tara, 0, len(transits))
	for _, p := range domain.AllPlanets {
		lon, ok := transits[p]
		if !ok {
			continue
		}
		n, _ := domain.NakshatraOf(lon)
		num, cycle := TaraOf(birth, n)
		out = append(out, Tara{
			Planet:         p,
			Nakshatra:      n.String(),
			Number:         num,
			Name:           tables.NavataraNames[num-1],
			Malefic:        tables.MaleficTaras[num],
			CycleFromJanma: cycle,
		})
	}
	return out
}

// NavataraWarnings keeps the planets transiting malefic taras
func NavataraWarnings(taras []Tara) []Tara {
	var out []Tara
	for _, t := range taras {
		if t.Malefic {
			out = append(out, t)
		}
	}
	return out
}

// NadiActivation reports which planets have matured by the current age
type NadiActivation struct {
	Age      int             `json:"age"`
	Matured  []domain.Planet `json:"matured"`
	Maturing []domain.Planet `json:"maturing_this_year,omitempty"`
	Next     *NadiMilestone  `json:"next,omitempty"`
}

// NadiMilestone is the next planet to mature
type NadiMilestone struct {
	Planet domain.Planet `json:"planet"`
	Age    int           `json:"age"`
}

// AgeAt returns completed years between birth and at
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Nadi classifies the planets by their maturity ages
func Nadi(age int) NadiActivation {
	a := NadiActivation{Age: age}
	for _, p := range domain.AllPlanets {
		m := tables.NadiAges[p]
		switch {
		case m == age:
			a.Maturing = append(a.Maturing, p)
			a.Matured = append(a.Matured, p)
		case m < age:
			a.Matured = append(a.Matured, p)
		case a.Next == nil || m < a.Next.Age:
			a.Next = &NadiMilestone{Planet: p, Age: m}
		}
	}
	return a
}

// Conflict is a disagreement between the Vimshottari and Yogini rulers at one level
type Conflict struct {
	Level           string          `json:"level"`
	VimshottariLord string          `json:"vimshottari_lord"`
	YoginiLord      string          `json:"yogini_lord"`
	YoginiPlanet    domain.Planet   `json:"yogini_planet"`
	Relation        tables.Relation `json:"relation"`
	NatureClash     bool            `json:"nature_clash"`
	Severity        string          `json:"severity"`
	Description     string          `json:"description"`
}

// Conflicts compares the running Vimshottari and Yogini stacks level by level
func Conflicts(vim, yog dasha.Stack) []Conflict {
	var out []Conflict
	for i := 0; i < len(vim) && i < len(yog); i++ {
		if len(vim[i].Planets) == 0 || len(yog[i].Planets) == 0 {
			continue
		}
		vp, yp := vim[i].Planets[0], yog[i].Planets[0]
		if vp == yp {
			continue
		}
		rel := tables.Natural(vp, yp)
		clash := tables.NaturalNature[vp] != tables.NaturalNature[yp]
		enemy := rel == tables.Enemy || rel == tables.GreatEnemy
		if !enemy && !clash {
			continue
		}
		severity := "low"
		switch {
		case enemy && clash:
			severity = "high"
		case enemy:
			severity = "medium"
		}
		out = append(out, Conflict{
			Level:           vim[i].LevelName,
			VimshottariLord: vim[i].Lord,
			YoginiLord:      yog[i].Lord,
			YoginiPlanet:    yp,
			Relation:        rel,
			NatureClash:     clash,
			Severity:        severity,
			Description:     fmt.Sprintf("%s %s runs against %s (%s) of Yogini", vp, vim[i].LevelName, yog[i].Lord, yp),
		})
	}
	return out
}

// MatrixEntry scores one activation against the three timing filters
type MatrixEntry struct {
	Planet        domain.Planet        `json:"planet"`
	Target        domain.Planet        `json:"target"`
	Aspect        int                  `json:"aspect"`
	Peak          time.Time            `json:"peak"`
	KarmicTrigger bool                 `json:"karmic_trigger"`
	HighSAV       bool                 `json:"high_sav"`
	MaxDasha      bool                 `json:"maximum_dasha"`
	Score         int                  `json:"score"`
	Critical      bool                 `json:"critical"`
	Significance  transit.Significance `json:"dasha_significance"`
}

// PredictionMatrix flags activations where the karmic trigger, a supportive SAV and
// maximum dasha significance coincide. A paradox activation never counts as high SAV.
func PredictionMatrix(acts []transit.Activation) []MatrixEntry {
	out := make([]MatrixEntry, 0, len(acts))
	for _, a := range acts {
		e := MatrixEntry{
			Planet:        a.Planet,
			Target:        a.Target,
			Aspect:        a.Aspect,
			Peak:          a.Peak,
			KarmicTrigger: len(a.KarmicTrigger) > 0,
			HighSAV:       a.SAV >= ashtakavarga.StrongSAV && !a.Paradox,
			MaxDasha:      a.Significance == transit.Maximum,
			Significance:  a.Significance,
		}
		for _, flag := range []bool{e.KarmicTrigger, e.HighSAV, e.MaxDasha} {
			if flag {
				e.Score++
			}
		}
		e.Critical = e.Score == 3
		out = append(out, e)
	}
	return out
}

// Critical keeps the entries where all three filters agree
func Critical(entries []MatrixEntry) []MatrixEntry {
	var out []MatrixEntry
	for _, e := range entries {
		if e.Critical {
			out = append(out, e)
		}
	}
	return out
}
