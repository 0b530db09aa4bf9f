package ttt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Compact string notation for the position, much like a FEN row:
// 'x' and 'o' are pieces, a digit skips that many empty squares.
//
// For example:
//
//	x | x |
//	---------
//	o | o |
//	---------
//	  |   |
//
// is written as:
//
//	xx1oo4
//
// The empty board is "9".
func (p Position) Notation() string {
	builder := strings.Builder{}

	counter := 0
	for _, piece := range p.board {
		switch piece {
		case Cross, Circle:
			if counter > 0 {
				builder.WriteByte('0' + byte(counter))
				counter = 0
			}

			if piece == Cross {
				builder.WriteByte('x')
			} else {
				builder.WriteByte('o')
			}
		default:
			counter++
		}
	}

	if counter > 0 {
		builder.WriteByte('0' + byte(counter))
	}
	return builder.String()
}

// Create the position from given notation string. Apart from digits,
// '.' and '-' are accepted as a single empty square, so "xx.oo...." is
// the same as "xx1oo4".
func FromNotation(notation string) (Position, error) {
	var board [9]PlayerType
	index := 0

	for i, v := range notation {
		switch v {
		case 'x', 'X', 'o', 'O':
			if index >= 9 {
				return Position{}, fmt.Errorf("%w: too many squares in %q, at token %d (%c)", ErrMalformedPosition, notation, i, v)
			}
			board[index] = PieceFromRune(v)
			index++
		case '.', '-':
			index++
		default:
			if '1' <= v && v <= '9' {
				index += int(v - '0')
			} else {
				return Position{}, fmt.Errorf("%w: invalid notation %q, at token %d (%c)", ErrMalformedPosition, notation, i, v)
			}
		}

		if index > 9 {
			return Position{}, fmt.Errorf("%w: too many squares in %q, at token %d (%c)", ErrMalformedPosition, notation, i, v)
		}
	}

	if index != 9 {
		return Position{}, fmt.Errorf("%w: expected 9 squares in %q, got %d", ErrMalformedPosition, notation, index)
	}

	return FromCells(board)
}

// Encodes the position as a 9-element array of "X", "O" or null
func (p Position) MarshalJSON() ([]byte, error) {
	cells := make([]*string, 9)
	for i, c := range p.board {
		if c != None {
			s := c.String()
			cells[i] = &s
		}
	}
	return json.Marshal(cells)
}

// Decodes a 9-element array of "X", "O" and null/"" markers
func (p *Position) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPosition, err)
	}

	strs := make([]string, len(cells))
	for i, c := range cells {
		if c != nil {
			strs[i] = *c
		}
	}

	pos, err := FromStrings(strs)
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
