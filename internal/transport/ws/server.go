package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lantalk/relay-service/internal/service"
	"github.com/lantalk/relay-service/pkg/metrics"
)

type Server struct {
	upgrader websocket.Upgrader
	session  *service.SessionService

	pingEvery   time.Duration
	sendTimeout time.Duration
	maxMsgBytes int64
}

func NewServer(session *service.SessionService, pingEvery, sendTimeout time.Duration, maxMsgBytes int64) *Server {
	return &Server{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery:   pingEvery,
		sendTimeout: sendTimeout,
		maxMsgBytes: maxMsgBytes,
	}
}

// WS endpoint: GET /ws/{room}/{username}?preview=1
// {room} is "public" or a token; preview=1 joins without announcing.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomOrToken := chi.URLParam(r, "room")
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if roomOrToken == "" || username == "" {
		http.Error(w, "missing room or username", http.StatusBadRequest)
		return
	}
	preview := r.URL.Query().Get("preview") == "1"

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, s.sendTimeout)
	conn.SetReadLimit(s.maxMsgBytes)
	_ = conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})
	go s.writeLoop(c)

	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	// blocks until the peer disconnects; cleanup happens inside
	s.session.Run(c, roomOrToken, username, !preview)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "room", roomOrToken, "name", username, "err", err)
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}
