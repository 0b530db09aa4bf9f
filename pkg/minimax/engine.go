package minimax

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

var ErrSearchStopped = errors.New("search stopped before completion")

type SearchResult struct {
	BestMove   ttt.PosType
	Score      ttt.Score
	Lines      []SearchLine
	Nodes      uint32
	TimeMs     int
	StopReason StopReason
}

func (r SearchResult) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "bestmove %s score %d nodes %d time %d", r.BestMove, r.Score, r.Nodes, r.TimeMs)
	if r.StopReason != StopNone {
		fmt.Fprintf(&builder, " stop %s", r.StopReason)
	}
	for _, line := range r.Lines {
		if line.Searched {
			fmt.Fprintf(&builder, " [%s:%d]", line.Move, line.Score)
		} else {
			fmt.Fprintf(&builder, " [%s:?]", line.Move)
		}
	}
	return builder.String()
}

// Minimax search with limits, cancellation, optional memoization and
// root-parallel workers. Results are always the same as BestMove and Minimax.
// A single Engine must not run two searches at once, use Clone for that.
type Engine struct {
	listener   *StatsListener
	listenerMu sync.Mutex
	Limiter    LimiterLike
	table      *Table
	nodes      atomic.Uint32
	wg         sync.WaitGroup
}

func NewEngine() *Engine {
	return &Engine{
		listener: &StatsListener{},
		Limiter:  LimiterLike(NewLimiter()),
	}
}

// Adds custom context to the limiter, enabling cancellation through it
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	engine.SetContext(ctx)
//	result, err := engine.Search(pos, ttt.CrossTurn)
func (e *Engine) SetContext(ctx context.Context) {
	e.Limiter.SetContext(ctx)
}

func (e *Engine) SetLimits(limits *Limits) {
	e.Limiter.SetLimits(limits)
}

func (e *Engine) Limits() *Limits {
	return e.Limiter.Limits()
}

func (e *Engine) SetListener(listener StatsListener) {
	*e.listener = listener
}

func (e *Engine) ResetListener() {
	e.listener.OnMove(nil).OnStop(nil)
}

// Use given transposition table, instead of the engine's own
func (e *Engine) SetTable(table *Table) {
	e.table = table
}

// Transposition table used when memoizing, nil before the first memoized search
func (e *Engine) Table() *Table {
	return e.table
}

// Stop the running search
func (e *Engine) Stop() {
	e.Limiter.SetStop(true)
}

// Nodes visited by the last (or current) search
func (e *Engine) Nodes() uint32 {
	return e.nodes.Load()
}

// New engine with the same limits and listener, sharing the transposition table
func (e *Engine) Clone() *Engine {
	clone := NewEngine()
	limits := *e.Limits()
	clone.SetLimits(&limits)
	clone.SetListener(*e.listener)
	clone.table = e.table
	return clone
}

func (e *Engine) invokeListener(f ListenerFunc, line SearchLine) {
	if f != nil {
		e.listenerMu.Lock()
		f(toListenerStats(e, line))
		e.listenerMu.Unlock()
	}
}

func (e *Engine) setupSearch() {
	e.Limiter.Reset()
	e.nodes.Store(0)
	if e.Limits().Memoize && e.table == nil {
		e.table = NewTable()
	}
}

// Score every legal move of 'turn' and pick the best one, with the same
// tie-break as BestMove. On a full board returns ttt.PosIllegal.
//
// When a limit is reached or the context is cancelled, returns the partial
// result (scored moves only) together with ErrSearchStopped.
func (e *Engine) Search(pos ttt.Position, turn ttt.TurnType) (SearchResult, error) {
	e.setupSearch()

	moves := pos.GenerateMoves().Slice()
	children := pos.ChildPositions(turn)
	lines := make([]SearchLine, len(moves))
	for i := range moves {
		lines[i].Move = moves[i]
	}

	s := &searcher{limiter: e.Limiter, nodes: &e.nodes}
	if e.Limits().Memoize {
		s.table = e.table
	}

	threads := min(max(1, e.Limits().NThreads), max(1, len(moves)))
	for id := 0; id < threads; id++ {
		e.wg.Add(1)
		go e.worker(s, id, threads, children, turn, lines)
	}
	e.wg.Wait()

	complete := true
	for i := range lines {
		complete = complete && lines[i].Searched
	}

	if !complete {
		e.Limiter.EvaluateStopReason(e.Nodes())
	}

	best, score := selectBest(lines, turn)
	result := SearchResult{
		BestMove:   best,
		Score:      score,
		Lines:      lines,
		Nodes:      e.Nodes(),
		TimeMs:     int(e.Limiter.Elapsed()),
		StopReason: e.Limiter.StopReason(),
	}

	e.invokeListener(e.listener.onStop, SearchLine{Move: ttt.PosIllegal})

	if !complete {
		return result, fmt.Errorf("%w: %s", ErrSearchStopped, result.StopReason)
	}
	return result, nil
}

// Scores the root children with index id, id+step, id+2*step...
func (e *Engine) worker(s *searcher, id, step int, children []ttt.Position, turn ttt.TurnType, lines []SearchLine) {
	defer e.wg.Done()

	for i := id; i < len(children); i += step {
		if s.stopped() {
			return
		}

		score := s.minimax(children[i], !turn)
		if s.stopped() {
			return
		}

		lines[i].Score = score
		lines[i].Searched = true
		e.invokeListener(e.listener.onMove, lines[i])
	}
}
