package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

func newTestServer(t *testing.T) *httptest.Server {
	return newLimitedServer(t, nil)
}

func newLimitedServer(t *testing.T, limits *minimax.Limits) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(limits).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dialPlay(t *testing.T, ts *httptest.Server, side string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/play?side=" + side
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) playState {
	t.Helper()
	var state playState
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("read: %v", err)
	}
	return state
}

func post(t *testing.T, ts *httptest.Server, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/ping")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status=%d, want=%d", resp.StatusCode, http.StatusOK)
	}
}

func TestBestMove(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name  string
		body  string
		want  *int
		score *ttt.Score
	}{
		{"win now", `{"board":["X","X",null,"O","O",null,null,null,null],"turn":"X"}`, intPtr(2), scorePtr(ttt.ScoreCrossWon)},
		{"block", `{"board":["X",null,null,"O","O",null,null,null,null],"turn":"x"}`, intPtr(5), nil},
		{"implied turn", `{"board":["X","X",null,"O","O",null,null,null,null]}`, intPtr(2), scorePtr(ttt.ScoreCrossWon)},
		{"circle", `{"board":["X","X",null,"O","O",null,null,null,null],"turn":"o"}`, intPtr(5), scorePtr(ttt.ScoreCircleWon)},
		{"full board", `{"board":["X","O","X","X","O","O","O","X","X"]}`, nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got moveResponse
			if status := post(t, ts, "/api/best-move", tc.body, &got); status != http.StatusOK {
				t.Fatalf("status=%d, want=%d", status, http.StatusOK)
			}

			if tc.want == nil {
				if got.Move != nil {
					t.Errorf("move=%d, want null", *got.Move)
				}
				return
			}
			if got.Move == nil || *got.Move != *tc.want {
				t.Fatalf("move=%v, want=%d", got.Move, *tc.want)
			}
			if tc.score != nil && (got.Score == nil || *got.Score != *tc.score) {
				t.Errorf("score=%v, want=%d", got.Score, *tc.score)
			}
			if len(got.Lines) == 0 {
				t.Error("expected per-move lines")
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name, path, body string
	}{
		{"not json", "/api/best-move", `board`},
		{"missing board", "/api/best-move", `{"turn":"x"}`},
		{"short board", "/api/best-move", `{"board":["X",null]}`},
		{"bad cell", "/api/evaluate", `{"board":["Z",null,null,null,null,null,null,null,null]}`},
		{"bad side", "/api/best-move", `{"board":[null,null,null,null,null,null,null,null,null],"turn":"q"}`},
		{"random missing board", "/api/random-move", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]string
			if status := post(t, ts, tc.path, tc.body, &got); status != http.StatusBadRequest {
				t.Errorf("status=%d, want=%d", status, http.StatusBadRequest)
			}
			if got["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestRandomMove(t *testing.T) {
	ts := newTestServer(t)

	var got moveResponse
	// single empty square left
	post(t, ts, "/api/random-move", `{"board":["X","O","X","X","O","O",null,"X","X"]}`, &got)
	if got.Move == nil || *got.Move != 6 {
		t.Errorf("move=%v, want=6", got.Move)
	}

	got = moveResponse{}
	post(t, ts, "/api/random-move", `{"board":["X","O","X","X","O","O","O","X","X"]}`, &got)
	if got.Move != nil {
		t.Errorf("move=%d, want null", *got.Move)
	}

	for i := 0; i < 20; i++ {
		got = moveResponse{}
		post(t, ts, "/api/random-move", `{"board":[null,"X",null,"O",null,null,null,null,null]}`, &got)
		if got.Move == nil || *got.Move == 1 || *got.Move == 3 || *got.Move < 0 || *got.Move > 8 {
			t.Fatalf("move=%v, want an empty square", got.Move)
		}
	}
}

func TestEvaluate(t *testing.T) {
	ts := newTestServer(t)

	var got evaluateResponse
	post(t, ts, "/api/evaluate", `{"board":["X","X","X",null,"O","O",null,null,null]}`, &got)
	if !got.Winner || got.Draw || got.Score != ttt.ScoreCrossWon || got.Termination != "cross_won" {
		t.Errorf("got=%+v, want cross win", got)
	}
	if len(got.WinningLine) != 3 || got.WinningLine[0] != 0 || got.WinningLine[2] != 2 {
		t.Errorf("winning_line=%v, want=[0 1 2]", got.WinningLine)
	}
	if len(got.Moves) != 4 {
		t.Errorf("moves=%v, want 4 empty squares", got.Moves)
	}

	got = evaluateResponse{}
	post(t, ts, "/api/evaluate", `{"board":["X","O","X","X","O","O","O","X","X"]}`, &got)
	if got.Winner || !got.Draw || got.Score != ttt.ScoreDraw || got.Termination != "draw" {
		t.Errorf("got=%+v, want draw", got)
	}
}

func TestPlay(t *testing.T) {
	ts := newTestServer(t)
	conn := dialPlay(t, ts, "o")
	read := func() playState {
		t.Helper()
		return readState(t, conn)
	}

	// engine plays cross and opens
	state := read()
	if state.EngineMove == nil || *state.EngineMove != 8 {
		t.Fatalf("engine_move=%v, want=8", state.EngineMove)
	}
	if state.Human != "o" || state.Turn != "o" || state.Status != "none" {
		t.Errorf("state=%+v", state)
	}

	if err := conn.WriteJSON(map[string]int{"move": 4}); err != nil {
		t.Fatal(err)
	}
	state = read()
	if state.Error != "" {
		t.Fatalf("unexpected error %q", state.Error)
	}
	if state.EngineMove == nil {
		t.Fatal("expected an engine reply")
	}
	if got := state.Board.Occupied(); got != 3 {
		t.Errorf("occupied=%d, want=3", got)
	}
	if state.Board.At(4) != ttt.Circle {
		t.Errorf("square 4=%s, want=O", state.Board.At(4))
	}

	// occupied square is rejected, board unchanged
	if err := conn.WriteJSON(map[string]int{"move": 4}); err != nil {
		t.Fatal(err)
	}
	state = read()
	if state.Error == "" || state.EngineMove != nil || state.Board.Occupied() != 3 {
		t.Errorf("state=%+v, want an error and no change", state)
	}

	if err := conn.WriteJSON(map[string]string{"type": "reset"}); err != nil {
		t.Fatal(err)
	}
	state = read()
	if state.Board.Occupied() != 1 || state.EngineMove == nil || *state.EngineMove != 8 {
		t.Errorf("state=%+v, want a new game", state)
	}
}

func TestPlayBadSide(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws/play?side=z")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status=%d, want=%d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestBestMoveNodeLimit(t *testing.T) {
	ts := newLimitedServer(t, minimax.DefaultLimits().SetNodes(1000))

	var got moveResponse
	status := post(t, ts, "/api/best-move", `{"board":[null,null,null,null,null,null,null,null,null]}`, &got)
	if status != http.StatusOK {
		t.Fatalf("status=%d, want=%d", status, http.StatusOK)
	}
	if !got.Stopped || got.StopReason != "Nodes" {
		t.Errorf("stopped=%v stop_reason=%q, want a node limit stop", got.Stopped, got.StopReason)
	}
	if got.Move == nil || *got.Move < 0 || *got.Move > 8 {
		t.Errorf("move=%v, want a square", got.Move)
	}
	if len(got.Lines) != 9 {
		t.Errorf("len(lines)=%d, want=9", len(got.Lines))
	}

	// small enough to finish within the limit
	got = moveResponse{}
	post(t, ts, "/api/best-move", `{"board":["X","X",null,"O","O",null,null,null,null],"turn":"x"}`, &got)
	if got.Stopped || got.Move == nil || *got.Move != 2 {
		t.Errorf("got=%+v, want a complete search playing 2", got)
	}
}

func TestPlayNodeLimit(t *testing.T) {
	ts := newLimitedServer(t, minimax.DefaultLimits().SetNodes(1000))
	conn := dialPlay(t, ts, "o")

	// the stopped search still plays a move
	state := readState(t, conn)
	if state.EngineMove == nil || state.Board.Occupied() != 1 || state.Turn != "o" {
		t.Fatalf("state=%+v, want the engine to open", state)
	}
	if !strings.Contains(state.Error, minimax.ErrSearchStopped.Error()) {
		t.Errorf("error=%q, want the stop reported", state.Error)
	}

	free := -1
	for sq := ttt.A3; sq <= ttt.C1; sq++ {
		if state.Board.At(sq) == ttt.None {
			free = int(sq)
			break
		}
	}
	if err := conn.WriteJSON(map[string]int{"move": free}); err != nil {
		t.Fatal(err)
	}
	state = readState(t, conn)
	if state.EngineMove == nil || state.Board.Occupied() != 3 || state.Turn != "o" {
		t.Fatalf("state=%+v, want the engine to reply", state)
	}

	if err := conn.WriteJSON(map[string]string{"type": "reset"}); err != nil {
		t.Fatal(err)
	}
	state = readState(t, conn)
	if state.EngineMove == nil || state.Board.Occupied() != 1 {
		t.Errorf("state=%+v, want a new game opened by the engine", state)
	}
}

func intPtr(v int) *int {
	return &v
}

func scorePtr(v ttt.Score) *ttt.Score {
	return &v
}
