package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockIDGeneratorNeverRepeats(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewClockIDGenerator()
	gen.now = func() time.Time { return fixed }

	assert.Equal(t, "S1700000000000", gen.NewID("S"))
	assert.Equal(t, "H1700000000001", gen.NewID("H"))
	assert.Equal(t, "S1700000000002", gen.NewID("S"))

	fixed = fixed.Add(time.Second)
	assert.Equal(t, "S1700000001000", gen.NewID("S"))
}
