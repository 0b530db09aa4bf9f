package minimax

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Exact value of the position with 'turn' to play, computed by exhaustive
// minimax: cross maximizes, circle minimizes. A position already won by the
// previous move, or a full board, is scored by its static evaluation.
func Minimax(pos ttt.Position, turn ttt.TurnType) ttt.Score {
	s := searcher{nodes: &atomic.Uint32{}}
	return s.minimax(pos, turn)
}

// Recursive search state, shared by the workers of a single search.
// limiter and table are optional.
type searcher struct {
	limiter LimiterLike
	table   *Table
	nodes   *atomic.Uint32
}

func (s *searcher) stopped() bool {
	return s.limiter != nil && s.limiter.Stop()
}

func (s *searcher) minimax(pos ttt.Position, turn ttt.TurnType) ttt.Score {
	nodes := s.nodes.Add(1)
	if s.limiter != nil && !s.limiter.Ok(nodes) {
		// the value is discarded by the caller
		return ttt.ScoreDraw
	}

	if s.table != nil {
		if score, ok := s.table.Get(pos, turn); ok {
			return score
		}
	}

	children := pos.ChildPositions(turn)
	eval := pos.StaticEval()

	if len(children) == 0 || eval == ttt.ScoreCrossWon || eval == ttt.ScoreCircleWon {
		return eval
	}

	var value ttt.Score
	if turn == ttt.CrossTurn {
		value = ttt.ScoreCircleWon
		for i := range children {
			value = max(value, s.minimax(children[i], ttt.CircleTurn))
		}
	} else {
		value = ttt.ScoreCrossWon
		for i := range children {
			value = min(value, s.minimax(children[i], ttt.CrossTurn))
		}
	}

	if s.table != nil && !s.stopped() {
		s.table.Put(pos, turn, value)
	}
	return value
}
