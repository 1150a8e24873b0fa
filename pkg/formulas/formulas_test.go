package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNorm360(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"positive wrap", 370, 10},
		{"negative", -10, 350},
		{"exact turn", 720, 0},
		{"large negative", -725, 355},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Norm360(tt.in), 1e-9)
		})
	}
}

func TestArcAndDistance(t *testing.T) {
	assert.InDelta(t, 20.0, Arc(350, 10), 1e-9)
	assert.InDelta(t, 340.0, Arc(10, 350), 1e-9)
	assert.InDelta(t, 20.0, AngularDistance(10, 350), 1e-9)
	assert.InDelta(t, 180.0, AngularDistance(0, 180), 1e-9)
	assert.InDelta(t, -170.0, Norm180(190), 1e-9)
}

func TestInArc(t *testing.T) {
	assert.True(t, InArc(5, 350, 20))
	assert.True(t, InArc(350, 350, 20))
	assert.False(t, InArc(20, 350, 20))
	assert.False(t, InArc(100, 350, 20))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, 3.0, Round(2.5, 0))
}

func TestStats(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 1.0, WeightedSum([]float64{2, 0}, []float64{0.5, 0.5}), 1e-9)
	assert.Equal(t, 0.0, WeightedSum([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
}

func TestClampAndScale(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.InDelta(t, 30.0, Scale(0.5, 0, 1, 0, 60), 1e-9)
	assert.Equal(t, 60.0, Scale(2, 0, 1, 0, 60))
	assert.Equal(t, 5.0, Scale(1, 1, 1, 5, 10))
}
