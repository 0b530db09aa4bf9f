package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Result of a game, from a chosen player's perspective
type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "player1"
	case VersusPl2Win:
		return "player2"
	}
	return "draw"
}

// Game counters, safe to update from many workers
type VersusArenaStats struct {
	p1Wins           atomic.Uint32
	p2Wins           atomic.Uint32
	draws            atomic.Uint32
	firstToMoveWins  atomic.Uint32
	secondToMoveWins atomic.Uint32
}

// Count a game, 'result' is from the perspective of the player who moved first,
// 'switched' is set when that was the arena's player 2
func (vas *VersusArenaStats) record(result VersusMatchResult, switched bool) {
	if result == VersusDraw {
		vas.draws.Add(1)
		return
	}

	if result == VersusPl1Win {
		vas.firstToMoveWins.Add(1)
	} else {
		vas.secondToMoveWins.Add(1)
	}

	if (result == VersusPl1Win) != switched {
		vas.p1Wins.Add(1)
	} else {
		vas.p2Wins.Add(1)
	}
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int           { return int(vas.p1Wins.Load()) }
func (vas *VersusArenaStats) P2Wins() int           { return int(vas.p2Wins.Load()) }
func (vas *VersusArenaStats) Draws() int            { return int(vas.draws.Load()) }
func (vas *VersusArenaStats) FirstToMoveWins() int  { return int(vas.firstToMoveWins.Load()) }
func (vas *VersusArenaStats) SecondToMoveWins() int { return int(vas.secondToMoveWins.Load()) }

type VersusWorkerInfo struct {
	WorkerID         int
	NGames           int
	FinishedGames    int
	GameMoveNum      int
	Moves            []ttt.PosType
	Position         ttt.Position
	Result           VersusMatchResult
	P1Wins           int
	P2Wins           int
	Draws            int
	FirstToMoveWins  int
	SecondToMoveWins int
	P1Name           string
	P2Name           string
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
}

// Result of a finished game from the perspective of the side that moved first.
// Unfinished games count as draws.
func gameResult(pos ttt.Position, first ttt.TurnType) VersusMatchResult {
	var winner ttt.PlayerType
	switch pos.Termination() {
	case ttt.TerminationCrossWon:
		winner = ttt.Cross
	case ttt.TerminationCircleWon:
		winner = ttt.Circle
	default:
		return VersusDraw
	}

	if winner == first.Player() {
		return VersusPl1Win
	}
	return VersusPl2Win
}
