package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IlikeChooros/go-tictactoe/internal/config"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Writing to a buffer selects the ascii profile, so there are no escape sequences
func TestBoard(t *testing.T) {
	pos, err := ttt.FromNotation("xo3x3")
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(&bytes.Buffer{}, config.DefaultConfig.Colors)
	want := strings.Join([]string{
		" X | O | 2 ",
		"---+---+---",
		" 3 | 4 | X ",
		"---+---+---",
		" 6 | 7 | 8 ",
		"",
	}, "\n")

	if got := r.Board(pos); got != want {
		t.Errorf("Board()=\n%s\nwant=\n%s", got, want)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		notation string
		turn     ttt.TurnType
		want     string
	}{
		{"9", ttt.CrossTurn, "X to move"},
		{"x8", ttt.CircleTurn, "O to move"},
		{"xxx1oo3", ttt.CircleTurn, "X wins"},
		{"xx1ooox2", ttt.CrossTurn, "O wins"},
		{"xoxxoooxx", ttt.CrossTurn, "Draw"},
	}

	r := NewRenderer(&bytes.Buffer{}, config.DefaultConfig.Colors)
	for _, tc := range tests {
		t.Run(tc.notation, func(t *testing.T) {
			pos, err := ttt.FromNotation(tc.notation)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Status(pos, tc.turn); got != tc.want {
				t.Errorf("Status()=%q, want=%q", got, tc.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, config.DefaultConfig.Colors)
	r.Print(ttt.NewPosition(), ttt.CrossTurn)

	if !strings.HasSuffix(buf.String(), "X to move\n") {
		t.Errorf("Print() output:\n%s", buf.String())
	}
}
