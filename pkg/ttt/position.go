package ttt

import "fmt"

const (
	_bitboardCrossIdx  = 0
	_bitboardCircleIdx = 1
	_fullBoard         = 0b111111111
)

// Immutable 3x3 board. Every method works on a copy, so positions can be
// freely shared between search branches and goroutines.
type Position struct {
	board     [9]PlayerType
	bitboards [2]uint16
}

// The empty board
func NewPosition() Position {
	return Position{}
}

// Build a position from raw cells, rejects values other than None, Cross and Circle
func FromCells(cells [9]PlayerType) (Position, error) {
	p := Position{}
	for i, c := range cells {
		switch c {
		case None:
		case Cross, Circle:
			p = p.play(PosType(i), c == Cross)
		default:
			return Position{}, fmt.Errorf("%w: invalid cell value %d at index %d", ErrMalformedPosition, c, i)
		}
	}
	return p, nil
}

// Build a position from 9 strings: "X"/"x", "O"/"o", or an empty marker ("", " ", ".", "-")
func FromStrings(cells []string) (Position, error) {
	if len(cells) != 9 {
		return Position{}, fmt.Errorf("%w: expected 9 cells, got %d", ErrMalformedPosition, len(cells))
	}

	var board [9]PlayerType
	for i, c := range cells {
		v, err := cellFromString(c)
		if err != nil {
			return Position{}, fmt.Errorf("%w at index %d", err, i)
		}
		board[i] = v
	}
	return FromCells(board)
}

func cellFromString(s string) (PlayerType, error) {
	switch s {
	case "X", "x":
		return Cross, nil
	case "O", "o":
		return Circle, nil
	case "", " ", ".", "-":
		return None, nil
	}
	return None, fmt.Errorf("%w: invalid cell %q", ErrMalformedPosition, s)
}

// Place the piece of 'turn' on the square 'mv', returning the new position.
// The receiver is left untouched.
func (p Position) MakeMove(mv PosType, turn TurnType) (Position, error) {
	if !mv.Valid() {
		return p, fmt.Errorf("%w: square %d out of range", ErrInvalidMove, mv)
	}
	if p.board[mv] != None {
		return p, fmt.Errorf("%w: square %d", ErrSquareOccupied, mv)
	}
	return p.play(mv, turn), nil
}

// Unchecked version of MakeMove, 'mv' must be an empty square
func (p Position) play(mv PosType, turn TurnType) Position {
	idx := _bitboardCrossIdx
	player := Cross
	if turn == CircleTurn {
		player = Circle
		idx = _bitboardCircleIdx
	}

	p.bitboards[idx] |= 1 << mv
	p.board[mv] = player
	return p
}

// Piece on given square
func (p Position) At(mv PosType) PlayerType {
	if !mv.Valid() {
		return None
	}
	return p.board[mv]
}

// Copy of the cells
func (p Position) Cells() [9]PlayerType {
	return p.board
}

// Number of occupied squares
func (p Position) Occupied() int {
	n := 0
	for _, c := range p.board {
		if c != None {
			n++
		}
	}
	return n
}

// Side to move, assuming cross started and the sides alternated
func (p Position) Turn() TurnType {
	return p.Occupied()%2 == 0
}

// Bitboard key, cross occupancy in the low 9 bits, circle in the next 9
func (p Position) Key() uint32 {
	return uint32(p.bitboards[_bitboardCrossIdx]) | uint32(p.bitboards[_bitboardCircleIdx])<<9
}

func (p Position) String() string {
	return p.Notation()
}
