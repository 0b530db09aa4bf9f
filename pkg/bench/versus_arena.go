package bench

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
different players (for example minimax against random moves).
*/

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   uint
	NThreads uint
	Position ttt.Position
	wg       sync.WaitGroup
	finished atomic.Bool
	ctx      context.Context
}

func NewVersusArena(position ttt.Position, player1, player2 Player) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		Position: position,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames uint, nThreads uint) {
	va.NGames = nGames
	va.NThreads = max(nThreads, 1)
}

func (va *VersusArena) Wait() {
	va.wg.Wait()

	for {
		if va.finished.Load() {
			break
		}
		runtime.Gosched()
	}
}

func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = &DefaultListener{}
	}

	// Start equally distributed work between worker threads
	va.NThreads = max(va.NThreads, 1)
	va.finished.Store(false)
	listener.OnStart()
	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads

	va.wg.Add(int(va.NThreads))
	for i := uint(0); i < va.NThreads; i++ {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}

		// Always use a clone, to avoid race conditions when cloning
		p1 := va.Player1.Clone()
		p2 := va.Player2.Clone()
		l := listener.Clone()

		l.SetRow(int(i))
		go va.worker(int(i), int(nGames)+delta, l, p1, p2)
	}
}

func (va *VersusArena) worker(id, nGames int, listener ListenerLike, p1, p2 Player) {
	r := minimax.NewRand()
	var result VersusMatchResult
	var switched bool
	localStats := &VersusArenaStats{}

Loop:
	for i := 0; i < nGames; i++ {
		if r.Int()%2 == 0 {
			result = va.playGame(p1, p2, listener, id, nGames, i, localStats, false)
			switched = false
		} else {
			result = va.playGame(p2, p1, listener, id, nGames, i, localStats, true)
			switched = true
		}

		select {
		case <-va.ctx.Done():
			break Loop
		default:
			// continue
		}

		va.record(result, switched)
		localStats.record(result, switched)
	}

	va.wg.Done()
	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:         id,
		NGames:           nGames,
		FinishedGames:    va.Total(),
		P1Wins:           localStats.P1Wins(),
		P2Wins:           localStats.P2Wins(),
		Draws:            localStats.Draws(),
		FirstToMoveWins:  localStats.FirstToMoveWins(),
		SecondToMoveWins: localStats.SecondToMoveWins(),
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
	})

	if id == 0 {
		va.wg.Wait()
		listener.Summary(VersusSummaryInfo{
			TotalGames:       va.Total(),
			P1Wins:           va.P1Wins(),
			P2Wins:           va.P2Wins(),
			FirstToMoveWins:  va.FirstToMoveWins(),
			SecondToMoveWins: va.SecondToMoveWins(),
			Draws:            va.Draws(),
			Workers:          int(va.NThreads),
			P1Name:           va.Player1.Name(),
			P2Name:           va.Player2.Name(),
		})
		listener.OnEnd()
		va.finished.Store(true)
	}
}

// Plays a single game from the arena's position, 'first' moves first.
// Returns the result from the first player's perspective.
func (va *VersusArena) playGame(
	first, second Player, listener ListenerLike, workerId, nGames, finishedGames int,
	versusStats *VersusArenaStats, switched bool,
) VersusMatchResult {
	moves := make([]ttt.PosType, 0, 9)
	gamePos := va.Position
	turn := gamePos.Turn()
	players := [2]Player{first, second}
	result := VersusDraw

	info := func() VersusWorkerInfo {
		p1Name, p2Name := va.Player1.Name(), va.Player2.Name()
		return VersusWorkerInfo{
			WorkerID:      workerId,
			Moves:         moves,
			GameMoveNum:   len(moves),
			Position:      gamePos,
			Result:        result,
			NGames:        nGames,
			FinishedGames: finishedGames,
			P1Wins:        versusStats.P1Wins(),
			P2Wins:        versusStats.P2Wins(),
			Draws:         versusStats.Draws(),
			P1Name:        p1Name,
			P2Name:        p2Name,
		}
	}

	listener.OnGameStart()

Loop:
	for !gamePos.IsTerminated() {
		select {
		case <-va.ctx.Done():
			result = VersusDraw
			break Loop
		default:
			// continue
		}

		mover := len(moves) % 2
		mv := players[mover].Move(gamePos, turn)
		next, err := gamePos.MakeMove(mv, turn)
		if err != nil {
			// an illegal move forfeits the game
			log.Printf("[arena] worker %d: %s played %v: %v", workerId, players[mover].Name(), mv, err)
			if mover == 0 {
				result = VersusPl2Win
			} else {
				result = VersusPl1Win
			}
			break Loop
		}

		gamePos = next
		turn = !turn
		moves = append(moves, mv)
		listener.OnMoveMade(info())
	}

	if gamePos.IsTerminated() {
		result = gameResult(gamePos, va.Position.Turn())
	}

	// report from the arena's player1 perspective
	reported := result
	if switched {
		reported = -result
	}
	final := info()
	final.Result = reported
	listener.OnFinishedGame(final)

	return result
}
