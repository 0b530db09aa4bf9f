package ttt

import (
	"strconv"
	"strings"
)

// Enum for the squares, row-major with A3 being the top-left corner
const (
	A3 PosType = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

const (
	PosIllegal PosType = 255
)

// Whether this is a square index on the 3x3 board
func (mv PosType) Valid() bool {
	return mv <= C1
}

func (mv PosType) Row() int {
	return int(mv) / 3
}

func (mv PosType) Col() int {
	return int(mv) % 3
}

func (mv PosType) String() string {
	if !mv.Valid() {
		return "none"
	}
	return strconv.Itoa(int(mv))
}

type MoveList struct {
	Moves [9]PosType
	Size  uint8
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

func (ml *MoveList) AppendMove(mv PosType) {
	ml.Moves[ml.Size] = mv
	ml.Size++
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []PosType {
	return ml.Moves[:ml.Size]
}

func (ml *MoveList) String() string {
	if ml.Size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.Size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
