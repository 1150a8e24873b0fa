package aspects

import "github.com/aristath/jyotish/internal/domain"

// rashiDrishti[a][b] is true when sign a aspects sign b
var rashiDrishti = buildRashiDrishti()

func buildRashiDrishti() [12][12]bool {
	var t [12][12]bool
	for _, a := range domain.AllSigns {
		for _, b := range domain.AllSigns {
			if a == b {
				continue
			}
			switch a.Modality() {
			case domain.Movable:
				t[a][b] = b.Modality() == domain.Fixed && b != a.Add(1)
			case domain.Fixed:
				t[a][b] = b.Modality() == domain.Movable && b != a.Add(-1)
			case domain.Dual:
				t[a][b] = b.Modality() == domain.Dual
			}
		}
	}
	return t
}

// SignAspects reports whether sign a casts rashi drishti on sign b
func SignAspects(a, b domain.Sign) bool {
	return rashiDrishti[a][b]
}

// SignsAspectedBy lists the three signs aspected by s
func SignsAspectedBy(s domain.Sign) []domain.Sign {
	var out []domain.Sign
	for _, b := range domain.AllSigns {
		if rashiDrishti[s][b] {
			out = append(out, b)
		}
	}
	return out
}
