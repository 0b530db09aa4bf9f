package ttt

import (
	"errors"
	"fmt"
)

type PosType uint8
type TurnType bool
type PlayerType uint8

// Exact game-theoretic value of a position: 1 cross wins, -1 circle wins, 0 otherwise
type Score int8

const (
	CrossTurn  TurnType = true
	CircleTurn TurnType = false
)

const (
	None   PlayerType = 0
	Cross  PlayerType = 1
	Circle PlayerType = 2
)

const (
	ScoreCircleWon Score = -1
	ScoreDraw      Score = 0
	ScoreCrossWon  Score = 1
)

var (
	ErrMalformedPosition = errors.New("malformed position")
	ErrInvalidMove       = errors.New("invalid move")
	ErrSquareOccupied    = errors.New("square already occupied")
	ErrInvalidSide       = errors.New("invalid side")
)

// Piece placed on the board by this side
func (t TurnType) Player() PlayerType {
	if t == CrossTurn {
		return Cross
	}
	return Circle
}

func (t TurnType) String() string {
	if t == CrossTurn {
		return "x"
	}
	return "o"
}

// Parse a side, accepts 'x'/'X' and 'o'/'O'
func TurnFromString(s string) (TurnType, error) {
	switch s {
	case "x", "X":
		return CrossTurn, nil
	case "o", "O":
		return CircleTurn, nil
	}
	return CrossTurn, fmt.Errorf("%w %q, expected x or o", ErrInvalidSide, s)
}

func (p PlayerType) String() string {
	switch p {
	case Cross:
		return "X"
	case Circle:
		return "O"
	}
	return " "
}

// Piece from the character used in notation ('x', 'o'), anything else is None
func PieceFromRune(r rune) PlayerType {
	switch r {
	case 'x', 'X':
		return Cross
	case 'o', 'O':
		return Circle
	}
	return None
}
