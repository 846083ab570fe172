package service

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator mints entity ids carrying a one-letter type tag ("S", "H").
type IDGenerator interface {
	NewID(prefix string) string
}

// ClockIDGenerator issues millisecond timestamps that never repeat within
// the process: a request landing in an already used millisecond gets the
// next free value.
type ClockIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockIDGenerator constructs a generator reading the wall clock.
func NewClockIDGenerator() *ClockIDGenerator {
	return &ClockIDGenerator{now: time.Now}
}

// NewID returns prefix followed by a strictly increasing millisecond value.
func (g *ClockIDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return prefix + strconv.FormatInt(ms, 10)
}
