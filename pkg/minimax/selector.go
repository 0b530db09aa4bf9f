package minimax

import (
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Source of randomness for RandomMove, *rand.Rand satisfies it
type RandSource interface {
	Intn(n int) int
}

// Best move for 'turn', or ttt.PosIllegal if the board is full.
//
// Moves are scored with Minimax in ascending square order, and a move is
// accepted when it is at least as good as the best one so far, so among
// equally good moves the one with the highest index is returned.
func BestMove(pos ttt.Position, turn ttt.TurnType) ttt.PosType {
	moves := pos.GenerateMoves().Slice()
	if len(moves) == 0 {
		return ttt.PosIllegal
	}

	lines := make([]SearchLine, len(moves))
	for i, child := range pos.ChildPositions(turn) {
		lines[i] = SearchLine{
			Move:     moves[i],
			Score:    Minimax(child, !turn),
			Searched: true,
		}
	}

	move, _ := selectBest(lines, turn)
	return move
}

// Picks the move from scored root lines, starting from the first move and the
// worst score for 'turn', then accepting every line with score >= (cross)
// or <= (circle) the best so far. Lines not searched are skipped.
func selectBest(lines []SearchLine, turn ttt.TurnType) (ttt.PosType, ttt.Score) {
	if len(lines) == 0 {
		return ttt.PosIllegal, ttt.ScoreDraw
	}

	bestMove := lines[0].Move
	bestScore := ttt.ScoreCircleWon
	if turn == ttt.CircleTurn {
		bestScore = ttt.ScoreCrossWon
	}

	for _, line := range lines {
		if !line.Searched {
			continue
		}

		if (turn == ttt.CrossTurn && line.Score >= bestScore) ||
			(turn == ttt.CircleTurn && line.Score <= bestScore) {
			bestScore = line.Score
			bestMove = line.Move
		}
	}

	return bestMove, bestScore
}

// Uniformly random empty square, or ttt.PosIllegal if the board is full
func RandomMove(pos ttt.Position, r RandSource) ttt.PosType {
	moves := pos.GenerateMoves()
	if moves.Size == 0 {
		return ttt.PosIllegal
	}
	return moves.Moves[r.Intn(int(moves.Size))]
}
