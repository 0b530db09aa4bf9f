package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

type boardRequest struct {
	Board *ttt.Position `json:"board"`
	Turn  string        `json:"turn"`
}

type moveResponse struct {
	// nil when there is no legal move
	Move  *int                 `json:"move"`
	Score *ttt.Score           `json:"score,omitempty"`
	Lines []minimax.SearchLine `json:"lines,omitempty"`
	Nodes uint32               `json:"nodes,omitempty"`

	// set when a limit stopped the search, unscored lines have searched=false
	Stopped    bool   `json:"stopped,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

type evaluateResponse struct {
	Winner      bool      `json:"winner"`
	Draw        bool      `json:"draw"`
	Score       ttt.Score `json:"score"`
	Termination string    `json:"termination"`
	WinningLine []int     `json:"winning_line,omitempty"`
	Moves       []int     `json:"moves"`
}

var errMissingBoard = errors.New("missing board")

func decodeBoard(r *http.Request) (ttt.Position, string, error) {
	var payload boardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return ttt.Position{}, "", fmt.Errorf("invalid payload: %w", err)
	}
	if payload.Board == nil {
		return ttt.Position{}, "", errMissingBoard
	}
	return *payload.Board, payload.Turn, nil
}

func moveOrNil(mv ttt.PosType) *int {
	if !mv.Valid() {
		return nil
	}
	v := int(mv)
	return &v
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	pos, side, err := decodeBoard(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// side to move defaults to the one implied by the piece count
	turn := pos.Turn()
	if side != "" {
		if turn, err = ttt.TurnFromString(side); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	result, err := s.requestEngine(r.Context()).Search(pos, turn)
	stopped := errors.Is(err, minimax.ErrSearchStopped)
	if err != nil && !stopped {
		log.Printf("[server] best-move %s: %v", pos, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	response := moveResponse{
		Move:    moveOrNil(result.BestMove),
		Lines:   result.Lines,
		Nodes:   result.Nodes,
		Stopped: stopped,
	}
	if stopped {
		log.Printf("[server] best-move %s: %v", pos, err)
		response.StopReason = result.StopReason.String()
	}
	if response.Move != nil && anySearched(result.Lines) {
		response.Score = &result.Score
	}
	writeJSON(w, http.StatusOK, response)
}

func anySearched(lines []minimax.SearchLine) bool {
	for _, line := range lines {
		if line.Searched {
			return true
		}
	}
	return false
}

func (s *Server) handleRandomMove(w http.ResponseWriter, r *http.Request) {
	pos, _, err := decodeBoard(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	mv := minimax.RandomMove(pos, randFunc(s.intn))
	writeJSON(w, http.StatusOK, moveResponse{Move: moveOrNil(mv)})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	pos, _, err := decodeBoard(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	response := evaluateResponse{
		Winner:      pos.HasWinner(),
		Draw:        pos.IsDraw(),
		Score:       pos.StaticEval(),
		Termination: pos.Termination().String(),
		Moves:       make([]int, 0, 9),
	}
	if line, ok := pos.WinningLine(); ok {
		response.WinningLine = []int{int(line[0]), int(line[1]), int(line[2])}
	}
	for _, mv := range pos.GenerateMoves().Slice() {
		response.Moves = append(response.Moves, int(mv))
	}
	writeJSON(w, http.StatusOK, response)
}

// Adapts a function to minimax.RandSource
type randFunc func(n int) int

func (f randFunc) Intn(n int) int {
	return f(n)
}
