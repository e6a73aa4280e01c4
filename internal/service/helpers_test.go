package service

import (
	"errors"
	"io"
	"sync"

	"github.com/lantalk/relay-service/internal/domain"
	"github.com/lantalk/relay-service/internal/store"
)

var errSendFailed = errors.New("send failed")

// fakeConn scripts the inbound side and records the outbound side. Receive
// pops queued frames and then reports EOF, so SessionService.Run returns
// once the script is exhausted.
type fakeConn struct {
	mu       sync.Mutex
	inbox    [][]byte
	sent     []domain.Outbound
	failSend bool
	closed   bool
}

func newFakeConn(frames ...string) *fakeConn {
	c := &fakeConn{}
	for _, f := range frames {
		c.inbox = append(c.inbox, []byte(f))
	}
	return c
}

func (c *fakeConn) Send(msg domain.Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return errSendFailed
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeConn) Receive() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inbox) == 0 {
		return nil, io.EOF
	}
	raw := c.inbox[0]
	c.inbox = c.inbox[1:]
	return raw, nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) sentFrames() []domain.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Outbound, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *fakeConn) framesOfType(typ string) []domain.Outbound {
	var out []domain.Outbound
	for _, m := range c.sentFrames() {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func (c *fakeConn) wasClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fixture wires the full service stack over fresh in-memory state.
type fixture struct {
	rooms   *store.RoomRegistry
	tokens  *store.TokenDirectory
	index   *store.PublicIndex
	bcast   *BroadcastService
	signal  *SignalService
	session *SessionService
}

func newFixture() *fixture {
	rooms := store.NewRoomRegistry()
	tokens := store.NewTokenDirectory(rooms)
	index := store.NewPublicIndex()
	bcast := NewBroadcastService(rooms, index)
	signal := NewSignalService(tokens, index)

	return &fixture{
		rooms:   rooms,
		tokens:  tokens,
		index:   index,
		bcast:   bcast,
		signal:  signal,
		session: NewSessionService(rooms, tokens, index, bcast, signal),
	}
}

// addMember registers a passive member directly in the shared state, the
// way a finished join would have left it.
func (f *fixture) addMember(room, name string, quiet bool) *fakeConn {
	c := newFakeConn()
	final, ok := f.rooms.Join(room, c, name, quiet)
	if !ok || final != name {
		panic("fixture: join failed or name taken: " + name)
	}
	if room == domain.PublicRoom && !quiet {
		f.index.Add(name, c)
	}
	return c
}
