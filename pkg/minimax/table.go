package minimax

import (
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Transposition table, maps (position, side to move) to the exact minimax value.
// Safe for concurrent use, may be shared between engines.
type Table struct {
	mu      sync.RWMutex
	entries map[uint32]ttt.Score
	hits    atomic.Uint64
}

func NewTable() *Table {
	return &Table{entries: make(map[uint32]ttt.Score, 1<<12)}
}

func tableKey(pos ttt.Position, turn ttt.TurnType) uint32 {
	key := pos.Key()
	if turn == ttt.CrossTurn {
		key |= 1 << 18
	}
	return key
}

func (t *Table) Get(pos ttt.Position, turn ttt.TurnType) (ttt.Score, bool) {
	key := tableKey(pos, turn)
	t.mu.RLock()
	score, ok := t.entries[key]
	t.mu.RUnlock()

	if ok {
		t.hits.Add(1)
	}
	return score, ok
}

func (t *Table) Put(pos ttt.Position, turn ttt.TurnType, score ttt.Score) {
	key := tableKey(pos, turn)
	t.mu.Lock()
	t.entries[key] = score
	t.mu.Unlock()
}

// Number of stored positions
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Number of successful lookups
func (t *Table) Hits() uint64 {
	return t.hits.Load()
}

func (t *Table) Clear() {
	t.mu.Lock()
	t.entries = make(map[uint32]ttt.Score, 1<<12)
	t.hits.Store(0)
	t.mu.Unlock()
}
