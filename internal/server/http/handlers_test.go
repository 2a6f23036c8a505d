package httpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/20twoes/sochess-ws/internal/server/game"
	"github.com/20twoes/sochess-ws/internal/sovereign"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	games := game.NewManager(ctx, nil)
	ts := httptest.NewServer(NewServer(NewHandler(games, nil), ""))
	t.Cleanup(func() {
		cancel()
		_ = games.Close()
		ts.Close()
	})
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func startGame(t *testing.T, ts *httptest.Server) (host, guest SeatResponse) {
	t.Helper()
	if code := post(t, ts, "/api/new_game", NewGameRequest{Name: "alice"}, &host); code != http.StatusOK {
		t.Fatalf("new game: status %d", code)
	}
	if code := post(t, ts, "/api/join", JoinRequest{GameID: host.GameID, Name: "bob"}, &guest); code != http.StatusOK {
		t.Fatalf("join: status %d", code)
	}
	return host, guest
}

func TestFullOpening(t *testing.T) {
	ts := newTestServer(t)
	host, guest := startGame(t, ts)
	if host.Seat != 1 || guest.Seat != 2 || host.Token == "" || guest.Token == "" || host.Token == guest.Token {
		t.Fatalf("seats: host=%+v guest=%+v", host, guest)
	}
	if guest.State.Phase != "accepted" || len(guest.State.LegalMoves) != 20 {
		t.Fatalf("after join: phase=%s legal=%d", guest.State.Phase, len(guest.State.LegalMoves))
	}

	var st StateResponse
	code := post(t, ts, "/api/first_move", MoveRequest{GameID: host.GameID, Token: host.Token, SAN: "WNf01g03"}, &st)
	if code != http.StatusOK {
		t.Fatalf("first move: status %d", code)
	}
	if st.Phase != "first_move" || st.ToMove != 2 {
		t.Fatalf("after first move: phase=%s to_move=%d", st.Phase, st.ToMove)
	}

	code = post(t, ts, "/api/first_move_choice", ChoiceRequest{GameID: host.GameID, Token: guest.Token, Choice: "reject"}, &st)
	if code != http.StatusOK {
		t.Fatalf("choice: status %d", code)
	}
	if st.Phase != "in_progress" || st.ToMove != 2 {
		t.Fatalf("after reject: phase=%s to_move=%d", st.Phase, st.ToMove)
	}
	if st.Players[0].Owned != "W" || st.Players[1].Owned != "B" {
		t.Fatalf("owned after reject: %+v", st.Players)
	}
	if len(st.Moves) != 3 || st.Moves[1].SAN != "WNf01g03" || st.Moves[2].SAN != "reject" {
		t.Fatalf("move record: %+v", st.Moves)
	}

	code = post(t, ts, "/api/move", MoveRequest{GameID: host.GameID, Token: guest.Token, SAN: st.LegalMoves[0]}, &st)
	if code != http.StatusOK {
		t.Fatalf("move: status %d", code)
	}
	if st.ToMove != 1 {
		t.Fatalf("after move: to_move=%d", st.ToMove)
	}
}

func TestErrorStatuses(t *testing.T) {
	ts := newTestServer(t)
	host, guest := startGame(t, ts)
	id := host.GameID

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown game", "/api/state", StateRequest{GameID: "nope"}, http.StatusNotFound},
		{"bad token", "/api/first_move", MoveRequest{GameID: id, Token: "x", SAN: "WNf01g03"}, http.StatusForbidden},
		{"wrong seat", "/api/first_move", MoveRequest{GameID: id, Token: guest.Token, SAN: "WNf01g03"}, http.StatusForbidden},
		{"wrong phase", "/api/move", MoveRequest{GameID: id, Token: host.Token, SAN: "WNf01g03"}, http.StatusConflict},
		{"malformed move", "/api/first_move", MoveRequest{GameID: id, Token: host.Token, SAN: "WN"}, http.StatusBadRequest},
		{"rule violation", "/api/first_move", MoveRequest{GameID: id, Token: host.Token, SAN: "WNf01f03"}, http.StatusBadRequest},
		{"unknown color", "/api/defect", DefectRequest{GameID: id, Token: host.Token, Color: "mauve"}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code := post(t, ts, tc.path, tc.body, nil); code != tc.want {
				t.Fatalf("status: got %d want %d", code, tc.want)
			}
		})
	}

	resp, err := http.Get(ts.URL + "/api/move")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/move: status %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/api/state", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", resp.StatusCode)
	}
}

func TestStateETag(t *testing.T) {
	ts := newTestServer(t)
	host, _ := startGame(t, ts)

	body, _ := json.Marshal(StateRequest{GameID: host.GameID})
	resp, err := http.Post(ts.URL+"/api/state", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	tag := resp.Header.Get("ETag")
	if tag == "" {
		t.Fatalf("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/state", bytes.NewReader(body))
	req.Header.Set("If-None-Match", tag)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Fatalf("unchanged state: status %d", resp.StatusCode)
	}
}

func TestGamesAndHealth(t *testing.T) {
	ts := newTestServer(t)
	host, _ := startGame(t, ts)

	resp, err := http.Get(ts.URL + "/api/games")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var list GamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(list.Games) != 1 || list.Games[0] != host.GameID {
		t.Fatalf("games: %v", list.Games)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: status %d", resp.StatusCode)
	}
}

func TestBoardSVG(t *testing.T) {
	ts := newTestServer(t)
	host, _ := startGame(t, ts)

	resp, err := http.Get(ts.URL + "/api/board.svg?game_id=" + host.GameID + "&from=e02")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("content type %q", ct)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read: %v", err)
	}
	// 112 pieces plus the two destinations of the e02 pawn
	if got := strings.Count(buf.String(), "<circle"); got != 114 {
		t.Fatalf("circles: got %d want 114", got)
	}

	resp2, err := http.Get(ts.URL + "/api/board.svg?game_id=" + host.GameID + "&from=z99")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad square: status %d", resp2.StatusCode)
	}
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	host, _ := startGame(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events?game_id="+host.GameID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	next := func() StateResponse {
		t.Helper()
		for lines.Scan() {
			line := lines.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var st StateResponse
				if err := json.Unmarshal([]byte(data), &st); err != nil {
					t.Fatalf("event payload: %v", err)
				}
				return st
			}
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return StateResponse{}
	}

	if st := next(); st.Phase != "accepted" {
		t.Fatalf("first event phase %s", st.Phase)
	}
	if code := post(t, ts, "/api/first_move", MoveRequest{GameID: host.GameID, Token: host.Token, SAN: "WNf01g03"}, nil); code != http.StatusOK {
		t.Fatalf("first move: status %d", code)
	}
	st := next()
	if st.Phase != "first_move" || st.Moves[len(st.Moves)-1].SAN != "WNf01g03" {
		t.Fatalf("second event: phase=%s moves=%+v", st.Phase, st.Moves)
	}
	if st.Position == sovereign.InitialFEN {
		t.Fatalf("position did not change")
	}
}
