package ttt

type Termination int

const (
	TerminationNone      Termination = 0
	TerminationCircleWon Termination = 1
	TerminationCrossWon  Termination = 2
	TerminationDraw      Termination = 4
)

func (t Termination) String() string {
	switch t {
	case TerminationCircleWon:
		return "circle_won"
	case TerminationCrossWon:
		return "cross_won"
	case TerminationDraw:
		return "draw"
	}
	return "none"
}

// rows, columns, then diagonals, as bitboards (bit i == square i);
// the order decides StaticEval when more than one line is complete
var _winningBitboardPatterns = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

var _patterns = [8][3]PosType{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Index of the first complete line and the piece owning it, -1 if there is none
func (p Position) firstLine() (int, PlayerType) {
	crossbb := p.bitboards[_bitboardCrossIdx]
	circlebb := p.bitboards[_bitboardCircleIdx]

	for i := 0; i < 8; i++ {
		if crossbb&_winningBitboardPatterns[i] == _winningBitboardPatterns[i] {
			return i, Cross
		}
		if circlebb&_winningBitboardPatterns[i] == _winningBitboardPatterns[i] {
			return i, Circle
		}
	}
	return -1, None
}

// Whether any of the 8 lines is owned by a single side
func (p Position) HasWinner() bool {
	i, _ := p.firstLine()
	return i != -1
}

// Board is full and nobody won
func (p Position) IsDraw() bool {
	return p.GenerateMoves().Size == 0 && !p.HasWinner()
}

// Static (non-recursive) evaluation, decided by the first complete line
func (p Position) StaticEval() Score {
	switch _, player := p.firstLine(); player {
	case Cross:
		return ScoreCrossWon
	case Circle:
		return ScoreCircleWon
	}
	return ScoreDraw
}

func (p Position) Termination() Termination {
	switch _, player := p.firstLine(); player {
	case Cross:
		return TerminationCrossWon
	case Circle:
		return TerminationCircleWon
	}

	if (p.bitboards[_bitboardCrossIdx] | p.bitboards[_bitboardCircleIdx]) == _fullBoard {
		return TerminationDraw
	}
	return TerminationNone
}

func (p Position) IsTerminated() bool {
	return p.Termination() != TerminationNone
}

// Squares of the first complete line, ok is false if there is none
func (p Position) WinningLine() (line [3]PosType, ok bool) {
	i, _ := p.firstLine()
	if i == -1 {
		return line, false
	}
	return _patterns[i], true
}
