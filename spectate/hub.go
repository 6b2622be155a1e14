// Package spectate publishes a running game to read-only viewers over HTTP
// and WebSocket.
package spectate

import (
	"encoding/json"
	"sync"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/types"
)

// Hub caches the latest snapshot of a game and fans every engine
// notification out to the connected viewers. It implements engine.Listener.
type Hub struct {
	mu      sync.Mutex
	game    *engine.Game
	state   *types.BoardState
	clients map[*client]struct{}
}

type client struct {
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types sent to viewers. Every payload except ping is a
// types.BoardState.
const (
	msgState      = "state"
	msgLegalMoves = "legal_moves"
	msgMove       = "move"
	msgTurn       = "turn"
	msgEnd        = "end"
	msgPing       = "ping"
)

func NewHub(g *engine.Game) *Hub {
	return &Hub{
		game:    g,
		state:   g.State(),
		clients: make(map[*client]struct{}),
	}
}

// State returns a copy of the latest snapshot.
func (h *Hub) State() *types.BoardState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

func (h *Hub) LegalMovesFound(engine.Disc, []engine.Position) { h.publish(msgLegalMoves) }
func (h *Hub) DiscsUpdated(engine.Update)                     { h.publish(msgMove) }
func (h *Hub) TurnEnded(engine.TurnEnd)                       { h.publish(msgTurn) }
func (h *Hub) GameEnded(engine.Result)                        { h.publish(msgEnd) }

// publish runs on the goroutine driving the game, so the snapshot is taken
// before any further mutation.
func (h *Hub) publish(kind string) {
	s := h.game.State()
	data := mustMarshal(wsMessage{Type: kind, Payload: mustMarshal(s)})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
	for c := range h.clients {
		c.sendRaw(data)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// sendTo queues data for c unless c has already been disconnected.
func (h *Hub) sendTo(c *client, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.sendRaw(data)
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// sendRaw drops the message when the viewer is too slow to keep up.
func (c *client) sendRaw(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
