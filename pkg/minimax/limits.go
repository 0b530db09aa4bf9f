package minimax

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Nodes    uint32
	Movetime int
	Infinite bool
	NThreads int
	Memoize  bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
)

// Unlimited, single-threaded search without memoization
func DefaultLimits() *Limits {
	return &Limits{
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		NThreads: 1,
	}
}

// Set the maxiumum number of nodes engine can go through
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) {
	l.Infinite = infinite
}

// Number of goroutines scoring the root moves
func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}

// Cache subtree values by (position, side to move)
func (l *Limits) SetMemoize(memoize bool) *Limits {
	l.Memoize = memoize
	return l
}
