package spectate

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/player"
	"github.com/Zdifah/Game-Othello/types"
)

func newMatch(t *testing.T) (*match.Controller, *Hub) {
	t.Helper()
	g := engine.New()
	h := NewHub(g)
	g.Subscribe(h)
	return match.New(g, player.New("a"), player.New("b"), engine.Black), h
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestHubTracksGame(t *testing.T) {
	c, h := newMatch(t)
	if got := h.State().Phase; got != "not_ready" {
		t.Fatalf("phase before start = %q", got)
	}
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	s := h.State()
	if s.Phase != "start" || len(s.LegalMoves) != 4 {
		t.Fatalf("after start: phase %q, %d legal moves", s.Phase, len(s.LegalMoves))
	}
	if err := c.Play(engine.Position{Row: 2, Col: 3}); err != nil {
		t.Fatal(err)
	}
	s = h.State()
	if s.PlayerToMove != int(engine.White) || s.LastMove != (types.BoardPos{Row: 2, Col: 3}) {
		t.Fatalf("after move: to move %d, last %v", s.PlayerToMove, s.LastMove)
	}
	if s.Black != 4 || s.White != 1 {
		t.Fatalf("counts %d/%d, want 4/1", s.Black, s.White)
	}

	// State hands out copies.
	s.Board[0][0] = 9
	if h.State().Board[0][0] != 0 {
		t.Fatal("State leaked the cached board")
	}
}

func TestPingAndState(t *testing.T) {
	c, h := newMatch(t)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewServer(h, quietLogger()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ping")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ping status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var s types.BoardState
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if s.Height() != 8 || s.Board[3][3] != int(engine.White) || len(s.LegalMoves) != 4 {
		t.Fatalf("state = %+v", s)
	}

	resp, err = http.Get(srv.URL + "/api/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route status %d, want 404", resp.StatusCode)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestWebSocketStream(t *testing.T) {
	c, h := newMatch(t)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewServer(h, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// The greeting is queued after registration, so later moves reach us.
	if msg := readMessage(t, conn); msg.Type != msgState {
		t.Fatalf("first message %q, want state", msg.Type)
	}

	if err := c.Play(engine.Position{Row: 2, Col: 3}); err != nil {
		t.Fatal(err)
	}
	for {
		msg := readMessage(t, conn)
		if msg.Type != msgMove {
			continue
		}
		var s types.BoardState
		if err := json.Unmarshal(msg.Payload, &s); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if s.Board[2][3] != int(engine.Black) || len(s.Flipped) != 1 {
			t.Fatalf("move payload = %+v", s)
		}
		break
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatal(err)
	}
	for {
		if msg := readMessage(t, conn); msg.Type == msgState {
			break
		}
	}
}

func TestHeartbeat(t *testing.T) {
	_, h := newMatch(t)
	srv := httptest.NewServer(newServer(h, quietLogger(), 20*time.Millisecond))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	readMessage(t, conn) // state
	if msg := readMessage(t, conn); msg.Type != msgPing {
		t.Fatalf("idle message %q, want ping", msg.Type)
	}
}

func TestHubCloseDisconnects(t *testing.T) {
	_, h := newMatch(t)
	srv := httptest.NewServer(NewServer(h, quietLogger()))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	readMessage(t, conn)
	if h.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", h.ClientCount())
	}
	h.Close()
	if h.ClientCount() != 0 {
		t.Fatal("Close left clients registered")
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("read after Close = %v, want normal closure", err)
	}
}
