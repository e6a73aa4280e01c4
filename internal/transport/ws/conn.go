package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/lantalk/relay-service/internal/domain"
)

// wsConn adapts a gorilla connection to domain.Conn. Writes are serialized
// through a channel-as-mutex and bounded by a write deadline, so one hung
// peer cannot stall a broadcast sweep.
type wsConn struct {
	conn        *websocket.Conn
	sendTimeout time.Duration
	sendMu      chan struct{}
	closed      chan struct{}
}

func newWsConn(c *websocket.Conn, sendTimeout time.Duration) *wsConn {
	return &wsConn{
		conn:        c,
		sendTimeout: sendTimeout,
		sendMu:      make(chan struct{}, 1),
		closed:      make(chan struct{}),
	}
}

func (c *wsConn) Send(msg domain.Outbound) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.sendTimeout))

	return c.conn.WriteJSON(msg)
}

// Receive blocks until the next text frame. Control frames are handled by
// gorilla internally; binary frames are skipped.
func (c *wsConn) Receive() ([]byte, error) {
	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if typ == websocket.TextMessage {
			return data, nil
		}
	}
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
