package minimax

import "github.com/IlikeChooros/go-tictactoe/pkg/ttt"

type ListenerStats struct {
	// Root move that was just scored, zero value in 'onStop'
	Line       SearchLine
	Nodes      uint32
	TimeMs     int
	Nps        uint32
	StopReason StopReason
}

func toListenerStats(engine *Engine, line SearchLine) ListenerStats {
	elapsed := engine.Limiter.Elapsed()
	nodes := engine.Nodes()
	return ListenerStats{
		Line:       line,
		Nodes:      nodes,
		TimeMs:     int(elapsed),
		Nps:        uint32(uint64(nodes) * 1000 / uint64(max(elapsed, 1))),
		StopReason: engine.Limiter.StopReason(),
	}
}

// Listener function callback, receives the current search statistics
type ListenerFunc func(ListenerStats)

type StatsListener struct {
	// called after every root move is scored, may be called from any search goroutine
	// but never concurrently
	onMove ListenerFunc

	// called once when the search ends
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

func (listener *StatsListener) OnMove(onMove ListenerFunc) *StatsListener {
	listener.onMove = onMove
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

// A root move with its minimax score; Searched is false when the search
// stopped before the move was fully evaluated
type SearchLine struct {
	Move     ttt.PosType `json:"move"`
	Score    ttt.Score   `json:"score"`
	Searched bool        `json:"searched"`
}
