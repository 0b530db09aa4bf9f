package bench

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

type ListenerLike interface {
	SetRow(row int)
	OnStart()
	OnGameStart()
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(info VersusSummaryInfo)
	OnEnd()
	// Each worker gets its own clone
	Clone() ListenerLike
}

type DefaultListener struct {
	row int
}

func (d *DefaultListener) SetRow(row int)                  { d.row = row }
func (d *DefaultListener) OnStart()                        {}
func (d *DefaultListener) OnGameStart()                    {}
func (d *DefaultListener) OnMoveMade(VersusWorkerInfo)     {}
func (d *DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (d *DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (d *DefaultListener) Summary(VersusSummaryInfo)       {}
func (d *DefaultListener) OnEnd()                          {}
func (d *DefaultListener) Clone() ListenerLike             { return &DefaultListener{row: d.row} }

// Prints per-worker progress lines and the final summary to a terminal,
// colored with termenv. Clones share the output and its lock.
type TermListener struct {
	output *termenv.Output
	mu     *sync.Mutex
	row    int
}

func NewTermListener(w io.Writer) *TermListener {
	return &TermListener{
		output: termenv.NewOutput(w),
		mu:     &sync.Mutex{},
	}
}

func (l *TermListener) SetRow(row int) { l.row = row }

func (l *TermListener) OnStart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.HideCursor()
}

func (l *TermListener) OnGameStart()                {}
func (l *TermListener) OnMoveMade(VersusWorkerInfo) {}

func (l *TermListener) resultStyle(result VersusMatchResult) termenv.Style {
	style := l.output.String(result.String())
	switch result {
	case VersusPl1Win:
		return style.Foreground(l.output.Color("2")).Bold()
	case VersusPl2Win:
		return style.Foreground(l.output.Color("1")).Bold()
	}
	return style.Faint()
}

func (l *TermListener) OnFinishedGame(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	moves := make([]string, len(info.Moves))
	for i, mv := range info.Moves {
		moves[i] = mv.String()
	}

	fmt.Fprintf(l.output, "[worker %d] game %d/%d %-7s %s (%s)\n",
		info.WorkerID, info.FinishedGames+1, info.NGames,
		l.resultStyle(info.Result), info.Position.Notation(), strings.Join(moves, " "))
}

func (l *TermListener) OnFinishedWork(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "[worker %d] done: %s %d, %s %d, draws %d\n",
		info.WorkerID, info.P1Name, info.P1Wins, info.P2Name, info.P2Wins, info.Draws)
}

func (l *TermListener) Summary(info VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := l.output.String(fmt.Sprintf("%s vs %s, %d games on %d workers",
		info.P1Name, info.P2Name, info.TotalGames, info.Workers)).Bold().Underline()
	fmt.Fprintln(l.output, header)
	fmt.Fprintf(l.output, "  %-20s %s\n", info.P1Name+" wins", l.resultStyle(VersusPl1Win).Styled(fmt.Sprint(info.P1Wins)))
	fmt.Fprintf(l.output, "  %-20s %s\n", info.P2Name+" wins", l.resultStyle(VersusPl2Win).Styled(fmt.Sprint(info.P2Wins)))
	fmt.Fprintf(l.output, "  %-20s %d\n", "draws", info.Draws)
	fmt.Fprintf(l.output, "  %-20s %d\n", "first to move wins", info.FirstToMoveWins)
	fmt.Fprintf(l.output, "  %-20s %d\n", "second to move wins", info.SecondToMoveWins)
}

func (l *TermListener) OnEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.ShowCursor()
}

func (l *TermListener) Clone() ListenerLike {
	return &TermListener{output: l.output, mu: l.mu, row: l.row}
}
