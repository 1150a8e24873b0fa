package transit

import (
	"context"
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/pkg/formulas"
)

const (
	// dayResolution is the bisection tolerance in days
	dayResolution = 1.0
	// chunkSize is the number of samples between cancellation checks
	chunkSize = 64
)

type sample struct {
	jd    float64
	lon   float64
	speed float64
}

func (s sample) sign() domain.Sign {
	return domain.SignOf(s.lon)
}

// segment is a run of time during which the transiting planet stays in one sign
type segment struct {
	sign    domain.Sign
	start   float64
	end     float64
	samples []sample
}

func position(eph ephemeris.Ephemeris, p domain.Planet, jd float64) (sample, error) {
	pos, err := eph.Position(jd, p, ephemeris.FlagSidereal|ephemeris.FlagSpeed)
	if err != nil {
		return sample{}, err
	}
	return sample{jd: jd, lon: pos.Longitude, speed: pos.Speed}, nil
}

// segments samples p every step days over [from, to] and splits the span at sign
// changes refined to day resolution
func segments(ctx context.Context, eph ephemeris.Ephemeris, p domain.Planet, from, to, step float64) ([]segment, error) {
	first, err := position(eph, p, from)
	if err != nil {
		return nil, err
	}
	cur := segment{sign: first.sign(), start: from, samples: []sample{first}}
	prev := first

	var out []segment
	for i := 1; ; i++ {
		if i%chunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		jd := math.Min(from+float64(i)*step, to)
		s, err := position(eph, p, jd)
		if err != nil {
			return nil, err
		}
		if s.sign() != prev.sign() {
			edge, err := signEdge(eph, p, prev, s)
			if err != nil {
				return nil, err
			}
			cur.end = edge.jd
			cur.samples = append(cur.samples, edge)
			out = append(out, cur)
			cur = segment{sign: edge.sign(), start: edge.jd, samples: []sample{edge}}
			if edge.jd < s.jd {
				cur.samples = append(cur.samples, s)
			}
		} else {
			cur.samples = append(cur.samples, s)
		}
		prev = s
		if jd >= to {
			break
		}
	}
	cur.end = to
	return append(out, cur), nil
}

// signEdge bisects between two samples in different signs and returns the first
// sample in the new sign
func signEdge(eph ephemeris.Ephemeris, p domain.Planet, lo, hi sample) (sample, error) {
	for hi.jd-lo.jd > dayResolution {
		mid, err := position(eph, p, (lo.jd+hi.jd)/2)
		if err != nil {
			return sample{}, err
		}
		if mid.sign() == lo.sign() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

// offset is the signed arc from the exact aspect point to the sample
func offset(s sample, point float64) float64 {
	return formulas.Norm180(s.lon - point)
}

// hits finds the instants within the segment where the planet crosses point
func hits(eph ephemeris.Ephemeris, p domain.Planet, seg segment, point float64) ([]sample, error) {
	var out []sample
	for i := 0; i+1 < len(seg.samples); i++ {
		a, b := seg.samples[i], seg.samples[i+1]
		fa, fb := offset(a, point), offset(b, point)
		switch {
		case fa == 0:
			out = append(out, a)
		case fa*fb < 0 && math.Abs(fa-fb) < 90:
			h, err := bisectPoint(eph, p, a, b, point)
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		}
	}
	return out, nil
}

func bisectPoint(eph ephemeris.Ephemeris, p domain.Planet, lo, hi sample, point float64) (sample, error) {
	flo := offset(lo, point)
	for hi.jd-lo.jd > dayResolution {
		mid, err := position(eph, p, (lo.jd+hi.jd)/2)
		if err != nil {
			return sample{}, err
		}
		if fm := offset(mid, point); fm*flo > 0 {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	if math.Abs(offset(lo, point)) < math.Abs(offset(hi, point)) {
		return lo, nil
	}
	return hi, nil
}

// closest returns the sample of the segment nearest to point, refined by ternary
// search around the best coarse sample
func closest(eph ephemeris.Ephemeris, p domain.Planet, seg segment, point float64) (sample, error) {
	best := 0
	for i, s := range seg.samples {
		if math.Abs(offset(s, point)) < math.Abs(offset(seg.samples[best], point)) {
			best = i
		}
	}
	lo, hi := seg.start, seg.end
	if best > 0 {
		lo = seg.samples[best-1].jd
	}
	if best+1 < len(seg.samples) {
		hi = seg.samples[best+1].jd
	}
	for hi-lo > dayResolution {
		m1, m2 := lo+(hi-lo)/3, hi-(hi-lo)/3
		s1, err := position(eph, p, m1)
		if err != nil {
			return sample{}, err
		}
		s2, err := position(eph, p, m2)
		if err != nil {
			return sample{}, err
		}
		if math.Abs(offset(s1, point)) < math.Abs(offset(s2, point)) {
			hi = m2
		} else {
			lo = m1
		}
	}
	s, err := position(eph, p, (lo+hi)/2)
	if err != nil {
		return sample{}, err
	}
	if math.Abs(offset(seg.samples[best], point)) < math.Abs(offset(s, point)) {
		return seg.samples[best], nil
	}
	return s, nil
}
