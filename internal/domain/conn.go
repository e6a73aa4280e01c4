package domain

// PublicRoom is the well-known room every client may join without a token.
const PublicRoom = "public"

// Conn is one live client endpoint. Send is best-effort: a non-nil error
// means the peer is unreachable and the caller decides what to do about it.
// Receive blocks until the next text frame or until the peer is gone.
type Conn interface {
	Send(msg Outbound) error
	Receive() ([]byte, error)
	Close() error
}
