package planets

import "github.com/aristath/jyotish/internal/domain"

// Avastha is the Baladi age state of a planet within its sign
type Avastha string

const (
	Bala    Avastha = "Bala"
	Kumara  Avastha = "Kumara"
	Yuva    Avastha = "Yuva"
	Vriddha Avastha = "Vriddha"
	Mrita   Avastha = "Mrita"
)

var baladiOrder = [5]Avastha{Bala, Kumara, Yuva, Vriddha, Mrita}

var avasthaScores = map[Avastha]float64{
	Bala:    25,
	Kumara:  50,
	Yuva:    100,
	Vriddha: 30,
	Mrita:   10,
}

// Baladi splits a sign into five 6° states, reversed in even signs
func Baladi(s domain.Sign, signDegree float64) Avastha {
	i := int(signDegree / 6)
	if i > 4 {
		i = 4
	}
	if !s.IsOdd() {
		i = 4 - i
	}
	return baladiOrder[i]
}

// Score returns the avastha sub-score
func (a Avastha) Score() float64 {
	return avasthaScores[a]
}
