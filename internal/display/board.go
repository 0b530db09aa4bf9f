// Package display renders tic-tac-toe positions for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-tictactoe/internal/config"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

type Renderer struct {
	output *termenv.Output
	colors config.ConfigColors
}

func NewRenderer(w io.Writer, colors config.ConfigColors) *Renderer {
	return &Renderer{
		output: termenv.NewOutput(w),
		colors: colors,
	}
}

// Board drawn as 3 rows; empty squares show their index, so the
// user knows what to type. Pieces on the winning line are highlighted.
//
//	 X | O | 2
//	---+---+---
//	 3 | X | 5
//	---+---+---
//	 6 | 7 | O
func (r *Renderer) Board(pos ttt.Position) string {
	line, won := pos.WinningLine()
	onLine := func(sq ttt.PosType) bool {
		return won && (line[0] == sq || line[1] == sq || line[2] == sq)
	}

	grid := r.output.String("---+---+---").Foreground(r.output.Color(r.colors.Grid)).String()
	sep := r.output.String("|").Foreground(r.output.Color(r.colors.Grid)).String()

	builder := strings.Builder{}
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			sq := ttt.PosType(row*3 + col)
			cells[col] = " " + r.cell(pos.At(sq), sq, onLine(sq)) + " "
		}
		builder.WriteString(strings.Join(cells, sep))
		builder.WriteByte('\n')
		if row != 2 {
			builder.WriteString(grid)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func (r *Renderer) cell(piece ttt.PlayerType, sq ttt.PosType, highlight bool) string {
	var style termenv.Style
	switch piece {
	case ttt.Cross:
		style = r.output.String("X").Foreground(r.output.Color(r.colors.Cross)).Bold()
	case ttt.Circle:
		style = r.output.String("O").Foreground(r.output.Color(r.colors.Circle)).Bold()
	default:
		return r.output.String(sq.String()).Faint().String()
	}

	if highlight {
		style = style.Background(r.output.Color(r.colors.WinningLine))
	}
	return style.String()
}

// One line describing the game state
func (r *Renderer) Status(pos ttt.Position, turn ttt.TurnType) string {
	switch pos.Termination() {
	case ttt.TerminationCrossWon:
		return r.output.String("X wins").Foreground(r.output.Color(r.colors.Cross)).Bold().String()
	case ttt.TerminationCircleWon:
		return r.output.String("O wins").Foreground(r.output.Color(r.colors.Circle)).Bold().String()
	case ttt.TerminationDraw:
		return r.output.String("Draw").Bold().String()
	}
	return fmt.Sprintf("%s to move", strings.ToUpper(turn.String()))
}

func (r *Renderer) Print(pos ttt.Position, turn ttt.TurnType) {
	fmt.Fprint(r.output, r.Board(pos))
	fmt.Fprintln(r.output, r.Status(pos, turn))
}
