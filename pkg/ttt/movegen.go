package ttt

import "math/bits"

// Empty squares of the position, in ascending index order
func (p Position) GenerateMoves() *MoveList {
	movelist := NewMoveList()

	free := uint(_fullBoard ^ (p.bitboards[_bitboardCrossIdx] | p.bitboards[_bitboardCircleIdx]))
	for free != 0 {
		movelist.AppendMove(PosType(bits.TrailingZeros(free)))
		free &= free - 1
	}

	return movelist
}

// Every position reachable by placing 'turn' piece on one empty square,
// ordered the same way as GenerateMoves
func (p Position) ChildPositions(turn TurnType) []Position {
	moves := p.GenerateMoves()
	children := make([]Position, 0, moves.Size)
	for _, mv := range moves.Slice() {
		children = append(children, p.play(mv, turn))
	}
	return children
}
