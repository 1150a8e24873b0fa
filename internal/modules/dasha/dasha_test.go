package dasha

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func reference(t *testing.T) (*chart.Chart, time.Time) {
	t.Helper()
	return testingpkg.S1Chart(t), testingpkg.S1Birth(t).UTC()
}

var queryDate = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func allSystems() []System {
	return NewEngine(testingpkg.SilentLogger()).Systems()
}

func TestVimshottari_NestedStack(t *testing.T) {
	c, birth := reference(t)

	stack, err := Active(Vimshottari{}, c, birth, queryDate, 0)
	require.NoError(t, err)
	require.Len(t, stack, 5)

	assert.Equal(t, "Saturn", stack[0].Lord)
	for i, p := range stack {
		assert.Equal(t, i+1, p.Level)
		assert.Equal(t, Vimshottari{}.Levels()[i], p.LevelName)
		assert.NotEmpty(t, p.Lord)
		assert.True(t, p.Contains(queryDate))
		if i > 0 {
			assert.False(t, p.Start.Before(stack[i-1].Start))
			assert.False(t, p.End.After(stack[i-1].End))
		}
	}
	assert.True(t, stack.HasPlanet(domain.Saturn))
}

func TestVimshottari_Balance(t *testing.T) {
	lord, years := Vimshottari{}.Balance(0)
	assert.Equal(t, domain.Ketu, lord)
	assert.InDelta(t, 7, years, 1e-9)

	lord, years = Vimshottari{}.Balance(domain.NakshatraSpan * 1.5)
	assert.Equal(t, domain.Venus, lord)
	assert.InDelta(t, 10, years, 1e-9)
}

func assertPartition(t *testing.T, parent Period, children []Period) {
	t.Helper()
	require.NotEmpty(t, children)
	assert.Equal(t, parent.Start, children[0].Start)
	assert.Equal(t, parent.End, children[len(children)-1].End)
	for i, ch := range children {
		assert.True(t, ch.End.After(ch.Start), "%s %s is empty", ch.System, ch.Lord)
		assert.Equal(t, parent.Level+1, ch.Level)
		if i > 0 {
			assert.Equal(t, children[i-1].End, ch.Start)
		}
	}
}

func TestSystems_PartitionInvariant(t *testing.T) {
	c, birth := reference(t)
	horizon := birth.Add(YearsToDuration(HorizonYears))

	for _, sys := range allSystems() {
		t.Run(sys.Name(), func(t *testing.T) {
			mahas, err := sys.Mahadashas(c, birth)
			require.NoError(t, err)
			require.NotEmpty(t, mahas)

			assert.False(t, mahas[0].Start.After(birth))
			assert.False(t, mahas[len(mahas)-1].End.Before(horizon))
			for i := 1; i < len(mahas); i++ {
				assert.Equal(t, mahas[i-1].End, mahas[i].Start)
			}

			for _, m := range mahas[:3] {
				subs := sys.Subdivide(m)
				assertPartition(t, m, subs)
				if len(sys.Levels()) > 2 {
					assertPartition(t, subs[0], sys.Subdivide(subs[0]))
				}
			}

			stack, err := Active(sys, c, birth, queryDate, 0)
			require.NoError(t, err)
			assert.Len(t, stack, len(sys.Levels()))
		})
	}
}

func TestActive_OutsideWindow(t *testing.T) {
	c, birth := reference(t)

	_, err := Active(Vimshottari{}, c, birth, birth.Add(-time.Hour), 0)
	assert.True(t, errors.Is(err, domain.ErrInputMalformed))

	_, err = Active(Yogini{}, c, birth, birth.AddDate(HorizonYears+1, 0, 0), 0)
	assert.True(t, errors.Is(err, domain.ErrInputMalformed))
}

func TestYogini_ReferenceStart(t *testing.T) {
	c, birth := reference(t)

	mahas, err := Yogini{}.Mahadashas(c, birth)
	require.NoError(t, err)
	// Swati maps to Pingala
	assert.Equal(t, "Pingala", mahas[0].Lord)
	assert.Equal(t, []domain.Planet{domain.Sun}, mahas[0].Planets)
	assert.NotEmpty(t, mahas[0].Note)
	assert.Equal(t, "Dhanya", mahas[1].Lord)
}

func TestChara_ReferenceChart(t *testing.T) {
	c, birth := reference(t)

	assert.Equal(t, 9.0, CharaYears(c, domain.Cancer))
	assert.Equal(t, 8.0, CharaYears(c, domain.Gemini))
	assert.Equal(t, 5.0, CharaYears(c, domain.Leo))
	assert.Equal(t, 4.0, CharaYears(c, domain.Aries))
	assert.Equal(t, domain.Mars, charaLord(c, domain.Scorpio))
	assert.Equal(t, domain.Saturn, charaLord(c, domain.Aquarius))

	mahas, err := Chara{}.Mahadashas(c, birth)
	require.NoError(t, err)
	// the 9th from Cancer is Pisces, so the dasha runs backwards
	assert.Equal(t, "Cancer", mahas[0].Lord)
	assert.Equal(t, "Gemini", mahas[1].Lord)
	assert.Equal(t, birth, mahas[0].Start)
	assert.InDelta(t, 9, mahas[0].Years(), 1e-6)

	antars := Chara{}.Subdivide(mahas[0])
	require.Len(t, antars, 12)
	assert.Equal(t, "Gemini", antars[0].Lord)
	assert.Equal(t, "Cancer", antars[11].Lord)
}

func TestShoola_ReferenceChart(t *testing.T) {
	c, birth := reference(t)

	assert.Equal(t, domain.Cancer, ShoolaStart(c))
	mahas, err := Shoola{}.Mahadashas(c, birth)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cancer", "Gemini", "Taurus"}, []string{mahas[0].Lord, mahas[1].Lord, mahas[2].Lord})
	assert.InDelta(t, 9, mahas[0].Years(), 1e-6)
}

func TestSudarshana_ReferenceChart(t *testing.T) {
	c, birth := reference(t)

	years, err := Sudarshana{}.Mahadashas(c, birth)
	require.NoError(t, err)
	assert.Equal(t, "Cancer", years[0].Lord)
	assert.Equal(t, "Moon: Libra, Sun: Pisces", years[0].Note)
	assert.Equal(t, "Leo", years[1].Lord)
	assert.Equal(t, birth.AddDate(1, 0, 0), years[1].Start)

	months := Sudarshana{}.Subdivide(years[0])
	require.Len(t, months, 12)
	assert.Equal(t, "Cancer", months[0].Lord)
	assert.Equal(t, "Leo", months[1].Lord)
}

func TestKalachakra_Keys(t *testing.T) {
	for key := 0; key < 108; key++ {
		n, pada := padaOfKey(key)
		assert.Equal(t, key, padaKey(n, pada))
	}
	n, pada := padaOfKey(108)
	assert.Equal(t, domain.Nakshatra(0), n)
	assert.Equal(t, 1, pada)
}

func TestEngine_CurrentAndTimelines(t *testing.T) {
	c, birth := reference(t)
	e := NewEngine(testingpkg.SilentLogger())

	snap, errs := e.Current(c, birth, queryDate)
	assert.Empty(t, errs)
	assert.Len(t, snap, len(e.Systems()))

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	lines, errs := e.Timelines(c, birth, from, to, 2)
	assert.Empty(t, errs)

	vim := lines["vimshottari"]
	require.Len(t, vim, 1)
	assert.Equal(t, "Saturn", vim[0].Lord)
	require.NotEmpty(t, vim[0].Sub)
	for i, sub := range vim[0].Sub {
		assert.True(t, sub.Overlaps(from, to))
		assert.Empty(t, sub.Sub)
		if i > 0 {
			assert.True(t, sub.Start.After(vim[0].Sub[i-1].Start))
		}
	}

	_, ok := e.System("chara")
	assert.True(t, ok)
	_, ok = e.System("ashtottari")
	assert.False(t, ok)
}
