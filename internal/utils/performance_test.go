package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTimer_LevelsByThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	timer := NewTimer("static_build", log).WithThreshold(time.Nanosecond)
	time.Sleep(time.Millisecond)
	d := timer.StopWithContext(map[string]interface{}{"key": "abc", "planets": 9})

	assert.Greater(t, d, time.Duration(0))
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"operation":"static_build"`)
	assert.Contains(t, out, `"planets":9`)
	assert.Contains(t, out, "Slow operation detected")
}

func TestTimer_FastOperationLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	OperationTimer("dasha_snapshot", log)()

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "Performance measurement")
}
