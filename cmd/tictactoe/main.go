// tictactoe evaluates positions, plays games against the minimax engine and
// serves it over HTTP.
//
// Usage:
//
//	tictactoe [flags] best <notation> [x|o]
//	tictactoe [flags] eval <notation>
//	tictactoe [flags] random <notation>
//	tictactoe [flags] check <notation>
//	tictactoe [flags] play
//	tictactoe [flags] arena
//	tictactoe [flags] serve
//
// Positions use the run-length notation, e.g. "xx1oo4" or "9" for the empty board.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/IlikeChooros/go-tictactoe/internal/config"
	"github.com/IlikeChooros/go-tictactoe/internal/display"
	"github.com/IlikeChooros/go-tictactoe/internal/server"
	"github.com/IlikeChooros/go-tictactoe/pkg/bench"
	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

// Command-line flags, override the config file
var (
	flagSide     = flag.String("side", "", "Human side in 'play' (x or o)")
	flagMovetime = flag.Int("movetime", 0, "Search time limit in milliseconds")
	flagNodes    = flag.Int("nodes", 0, "Search node limit")
	flagThreads  = flag.Int("threads", 0, "Root-parallel search threads")
	flagMemoize  = flag.Bool("memoize", false, "Memoize scores in a transposition table")
	flagGames    = flag.Uint("games", 100, "Number of games played in 'arena'")
	flagOpponent = flag.String("opponent", "random", "Minimax opponent in 'arena' (random or minimax)")
	flagAddr     = flag.String("addr", "", "Listen address for 'serve'")
	flagSave     = flag.Bool("save", false, "Save the resulting config and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] best|eval|random|check|play|arena|serve [notation] [x|o]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagSave {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Saving config failed: %s\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "side":
			cfg.HumanSide = *flagSide
		case "movetime":
			cfg.Engine.Movetime = *flagMovetime
		case "nodes":
			cfg.Engine.Nodes = *flagNodes
		case "threads":
			cfg.Engine.Threads = *flagThreads
		case "memoize":
			cfg.Engine.Memoize = *flagMemoize
		case "addr":
			cfg.Server.Addr = *flagAddr
		}
	})
}

var errUsage = errors.New("missing or unknown command, see -help")

func run(ctx context.Context, cfg *config.Config, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	renderer := display.NewRenderer(out, cfg.Colors)
	command, args := args[0], args[1:]
	switch command {
	case "best", "eval", "random", "check":
		if len(args) == 0 {
			return fmt.Errorf("%s: missing position", command)
		}
		pos, err := ttt.FromNotation(args[0])
		if err != nil {
			return err
		}
		turn := pos.Turn()
		if len(args) > 1 {
			if turn, err = ttt.TurnFromString(args[1]); err != nil {
				return err
			}
		}
		return analyse(ctx, cfg, renderer, command, pos, turn, out)
	case "play":
		return play(ctx, cfg, renderer, in, out)
	case "arena":
		return arena(ctx, cfg, out)
	case "serve":
		return server.New(cfg.Limits()).ListenAndServe(ctx, cfg.Server.Addr)
	}
	return errUsage
}

func analyse(
	ctx context.Context, cfg *config.Config, renderer *display.Renderer,
	command string, pos ttt.Position, turn ttt.TurnType, out io.Writer,
) error {
	renderer.Print(pos, turn)

	switch command {
	case "best":
		engine := minimax.NewEngine()
		engine.SetContext(ctx)
		engine.SetLimits(cfg.Limits())
		result, err := engine.Search(pos, turn)
		fmt.Fprintln(out, result.String())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bestmove %s\n", result.BestMove)
	case "eval":
		fmt.Fprintf(out, "static %d\nminimax %d\n", pos.StaticEval(), minimax.Minimax(pos, turn))
	case "random":
		fmt.Fprintf(out, "move %s\n", minimax.RandomMove(pos, minimax.NewRand()))
	case "check":
		fmt.Fprintf(out, "winner %t\ndraw %t\ntermination %s\n", pos.HasWinner(), pos.IsDraw(), pos.Termination())
	}
	return nil
}

// Line based game against the engine, the human types square indices
func play(ctx context.Context, cfg *config.Config, renderer *display.Renderer, in io.Reader, out io.Writer) error {
	engine := minimax.NewEngine()
	engine.SetContext(ctx)
	engine.SetLimits(cfg.Limits())

	human := cfg.Human()
	pos := ttt.NewPosition()
	turn := ttt.CrossTurn
	scanner := bufio.NewScanner(in)

	for !pos.IsTerminated() {
		renderer.Print(pos, turn)

		var mv ttt.PosType
		if turn == human {
			fmt.Fprint(out, "Your move (0-8, q to quit): ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "q" {
				return nil
			}
			n, err := strconv.Atoi(text)
			if err != nil || n < 0 || !ttt.PosType(n).Valid() {
				fmt.Fprintf(out, "Invalid square %q\n", text)
				continue
			}
			mv = ttt.PosType(n)
		} else {
			result, err := engine.Search(pos, turn)
			if err != nil && !errors.Is(err, minimax.ErrSearchStopped) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			mv = result.BestMove
			fmt.Fprintf(out, "Engine plays %s\n", mv)
		}

		next, err := pos.MakeMove(mv, turn)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		pos = next
		turn = !turn
	}

	renderer.Print(pos, turn)
	return nil
}

func arena(ctx context.Context, cfg *config.Config, out io.Writer) error {
	engine := minimax.NewEngine()
	engine.SetLimits(cfg.Limits())
	// arena workers already run in parallel
	engine.Limits().SetThreads(1)

	var opponent bench.Player
	switch *flagOpponent {
	case "random":
		opponent = bench.NewRandomPlayer()
	case "minimax":
		opponent = bench.NewMinimaxPlayer(engine.Clone())
	default:
		return fmt.Errorf("unknown opponent %q", *flagOpponent)
	}

	va := bench.NewVersusArena(ttt.NewPosition(), bench.NewMinimaxPlayer(engine), opponent).WithContext(ctx)
	va.Setup(*flagGames, uint(max(1, cfg.Engine.Threads)))
	va.Start(bench.NewTermListener(out))
	va.Wait()
	return ctx.Err()
}
