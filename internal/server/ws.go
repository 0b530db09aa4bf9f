package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

type playMessage struct {
	// "move" (default) or "reset"
	Type string `json:"type"`
	Move *int   `json:"move"`
}

type playState struct {
	Board       ttt.Position `json:"board"`
	Turn        string       `json:"turn"`
	Human       string       `json:"human"`
	EngineMove  *int         `json:"engine_move"`
	Status      string       `json:"status"`
	WinningLine []int        `json:"winning_line,omitempty"`
	Error       string       `json:"error,omitempty"`
}

var (
	errNotYourTurn  = errors.New("not your turn")
	errGameFinished = errors.New("game already finished")
	errMissingMove  = errors.New("missing move")
)

// Single game between the websocket client and the engine
type playSession struct {
	engine *minimax.Engine
	human  ttt.TurnType
	pos    ttt.Position
	turn   ttt.TurnType
}

func (ps *playSession) reset() {
	ps.pos = ttt.NewPosition()
	ps.turn = ttt.CrossTurn
}

// Engine plays if it's its turn, returns the move or ttt.PosIllegal.
// The error wraps minimax.ErrSearchStopped when a limit cut the search short.
func (ps *playSession) engineMove() (ttt.PosType, error) {
	if ps.turn == ps.human || ps.pos.IsTerminated() {
		return ttt.PosIllegal, nil
	}

	// a stopped search still plays the best of the scored moves,
	// the stop is reported with the move
	result, err := ps.engine.Search(ps.pos, ps.turn)
	if err != nil && !errors.Is(err, minimax.ErrSearchStopped) {
		return ttt.PosIllegal, err
	}

	next, moveErr := ps.pos.MakeMove(result.BestMove, ps.turn)
	if moveErr != nil {
		return ttt.PosIllegal, moveErr
	}
	ps.pos = next
	ps.turn = !ps.turn
	return result.BestMove, err
}

func (ps *playSession) humanMove(msg playMessage) error {
	if ps.pos.IsTerminated() {
		return errGameFinished
	}
	if ps.turn != ps.human {
		return errNotYourTurn
	}
	if msg.Move == nil {
		return errMissingMove
	}
	if *msg.Move < 0 || *msg.Move > int(ttt.C1) {
		return ttt.ErrInvalidMove
	}

	next, err := ps.pos.MakeMove(ttt.PosType(*msg.Move), ps.turn)
	if err != nil {
		return err
	}
	ps.pos = next
	ps.turn = !ps.turn
	return nil
}

func (ps *playSession) state(engineMove ttt.PosType, err error) playState {
	state := playState{
		Board:      ps.pos,
		Turn:       ps.turn.String(),
		Human:      ps.human.String(),
		EngineMove: moveOrNil(engineMove),
		Status:     ps.pos.Termination().String(),
	}
	if line, ok := ps.pos.WinningLine(); ok {
		state.WinningLine = []int{int(line[0]), int(line[1]), int(line[2])}
	}
	if err != nil {
		state.Error = err.Error()
	}
	return state
}

// Websocket game: the query parameter 'side' (x or o, default x) is the client's side,
// the client sends {"move": n} or {"type": "reset"} and receives the state after
// its move and the engine's reply
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	human := ttt.CrossTurn
	if side := r.URL.Query().Get("side"); side != "" {
		var err error
		if human, err = ttt.TurnFromString(side); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[server] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := &playSession{engine: s.requestEngine(r.Context()), human: human}
	session.reset()

	mv, err := session.engineMove()
	if err := conn.WriteJSON(session.state(mv, err)); err != nil {
		return
	}

	for {
		var msg playMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[server] websocket read: %v", err)
			}
			return
		}

		mv = ttt.PosIllegal
		switch msg.Type {
		case "reset":
			session.reset()
			mv, err = session.engineMove()
		case "", "move":
			if err = session.humanMove(msg); err == nil {
				mv, err = session.engineMove()
			}
		default:
			err = errors.New("unknown message type " + msg.Type)
		}

		if err := conn.WriteJSON(session.state(mv, err)); err != nil {
			log.Printf("[server] websocket write: %v", err)
			return
		}
	}
}
