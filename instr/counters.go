// Package instr provides operation counters for measuring the cost of
// image operations.
//
// Counters are owned by the caller and passed explicitly to the functions
// that update them. They are not safe for concurrent use. A nil *Counters
// is valid and counts nothing.
package instr

import (
	"fmt"
	"log/slog"
)

const NumCounters = 10

// Counter indices used by the image operations.
const (
	// Ops counts pixels (decode based operators) or spans (run merge).
	Ops = 0
	// Runs counts runs produced by the chessboard generator.
	Runs = 0
	// Bytes counts memory allocated by the chessboard generator.
	Bytes = 1
)

type Counters struct {
	counts [NumCounters]uint64
	names  [NumCounters]string
}

func New() *Counters {
	return &Counters{}
}

func (c *Counters) Increment(i int, n int) {
	if c == nil {
		return
	}
	checkIndex(i)
	if n < 0 {
		panic(fmt.Sprintf("instr: negative increment %d", n))
	}
	c.counts[i] += uint64(n)
}

// Reset zeroes every counter. Names are kept.
func (c *Counters) Reset() {
	if c == nil {
		return
	}
	c.counts = [NumCounters]uint64{}
}

func (c *Counters) SetName(i int, label string) {
	if c == nil {
		return
	}
	checkIndex(i)
	c.names[i] = label
}

func (c *Counters) Count(i int) uint64 {
	if c == nil {
		return 0
	}
	checkIndex(i)
	return c.counts[i]
}

func (c *Counters) Name(i int) string {
	if c == nil {
		return ""
	}
	checkIndex(i)
	return c.names[i]
}

// Snapshot returns the named counters and their values.
func (c *Counters) Snapshot() map[string]uint64 {
	res := make(map[string]uint64)
	if c == nil {
		return res
	}
	for i, name := range c.names {
		if name != "" {
			res[name] = c.counts[i]
		}
	}
	return res
}

// LogValue implements slog.LogValuer, logging every named counter.
func (c *Counters) LogValue() slog.Value {
	if c == nil {
		return slog.GroupValue()
	}
	var attrs []slog.Attr
	for i, name := range c.names {
		if name != "" {
			attrs = append(attrs, slog.Uint64(name, c.counts[i]))
		}
	}
	return slog.GroupValue(attrs...)
}

func checkIndex(i int) {
	if i < 0 || i >= NumCounters {
		panic(fmt.Sprintf("instr: counter index %d out of range", i))
	}
}
