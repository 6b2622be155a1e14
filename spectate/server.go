package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type server struct {
	hub          *Hub
	log          *log.Logger
	pingInterval time.Duration
}

// NewServer returns the spectator HTTP surface for h:
//
//	GET /api/ping   liveness
//	GET /api/state  latest board snapshot
//	GET /ws         snapshot stream
func NewServer(h *Hub, logger *log.Logger) http.Handler {
	return newServer(h, logger, wsIdlePingInterval)
}

func newServer(h *Hub, logger *log.Logger, pingInterval time.Duration) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &server{hub: h, log: logger, pingInterval: pingInterval}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.State())
	})
	r.Get("/ws", s.serveWS)
	return r
}

func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("WARN websocket upgrade: %v", err)
		return
	}
	c := &client{send: make(chan []byte, 16)}
	s.hub.register(c)
	s.hub.sendTo(c, mustMarshal(wsMessage{Type: msgState, Payload: mustMarshal(s.hub.State())}))

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, c.send, s.pingInterval); err != nil {
			s.log.Printf("WARN websocket write: %v", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.unregister(c)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_state":
			s.hub.sendTo(c, mustMarshal(wsMessage{Type: msgState, Payload: mustMarshal(s.hub.State())}))
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
