package bench

import (
	"log"
	"math/rand"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Arena participant, each worker uses its own clone
type Player interface {
	Name() string
	// Move to play, ttt.PosIllegal if there is none
	Move(pos ttt.Position, turn ttt.TurnType) ttt.PosType
	Clone() Player
}

// Plays the minimax best move
type MinimaxPlayer struct {
	engine *minimax.Engine
}

func NewMinimaxPlayer(engine *minimax.Engine) *MinimaxPlayer {
	if engine == nil {
		engine = minimax.NewEngine()
	}
	return &MinimaxPlayer{engine: engine}
}

func (p *MinimaxPlayer) Name() string { return "minimax" }

func (p *MinimaxPlayer) Move(pos ttt.Position, turn ttt.TurnType) ttt.PosType {
	result, err := p.engine.Search(pos, turn)
	if err != nil {
		// partial result still holds the best of the scored moves
		log.Printf("[arena] minimax search: %v", err)
	}
	return result.BestMove
}

func (p *MinimaxPlayer) Clone() Player {
	return &MinimaxPlayer{engine: p.engine.Clone()}
}

// Plays uniformly random moves
type RandomPlayer struct {
	rand *rand.Rand
}

func NewRandomPlayer() *RandomPlayer {
	return &RandomPlayer{rand: minimax.NewRand()}
}

func (p *RandomPlayer) Name() string { return "random" }

func (p *RandomPlayer) Move(pos ttt.Position, turn ttt.TurnType) ttt.PosType {
	return minimax.RandomMove(pos, p.rand)
}

func (p *RandomPlayer) Clone() Player {
	return &RandomPlayer{rand: rand.New(rand.NewSource(p.rand.Int63()))}
}
