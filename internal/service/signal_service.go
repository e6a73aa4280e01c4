package service

import (
	"log/slog"

	"github.com/lantalk/relay-service/internal/domain"
	"github.com/lantalk/relay-service/internal/store"
)

// SignalService relays the private-room handshake between two public-room
// members. The handshake is stateless and fire-and-forget: tokens supplied
// by clients are trusted, offline targets are silently skipped, and nothing
// is reported back to the sender.
type SignalService struct {
	tokens *store.TokenDirectory
	index  *store.PublicIndex
}

func NewSignalService(tokens *store.TokenDirectory, index *store.PublicIndex) *SignalService {
	return &SignalService{tokens: tokens, index: index}
}

// Request mints (or reuses) a token and relays a private_invite to the
// target. Valid only from the public room; ignored otherwise.
func (s *SignalService) Request(room, from, to, token string) {
	if room != domain.PublicRoom {
		return
	}

	if token == "" {
		t, err := s.tokens.Issue()
		if err != nil {
			slog.Error("issue token", "err", err)
			return
		}
		token = t
	} else {
		s.tokens.Ensure(token)
	}

	s.relay(to, domain.Signal(domain.TypePrivateInvite, from, token))
}

// Accept relays a private_accept to the requester. The token is not
// validated against the directory; the accepting side joins via the normal
// join path with whatever token it echoes.
func (s *SignalService) Accept(room, from, to, token string) {
	if room != domain.PublicRoom {
		return
	}
	s.relay(to, domain.Signal(domain.TypePrivateAccept, from, token))
}

// Deny relays a private_deny to the requester. Same trust model as Accept.
func (s *SignalService) Deny(room, from, to, token string) {
	if room != domain.PublicRoom {
		return
	}
	s.relay(to, domain.Signal(domain.TypePrivateDeny, from, token))
}

func (s *SignalService) relay(to string, msg domain.Outbound) {
	c, ok := s.index.Lookup(to)
	if !ok {
		// цель оффлайн — запрос молча пропадает
		slog.Debug("signal target offline", "to", to, "type", msg.Type)
		return
	}
	if err := c.Send(msg); err != nil {
		slog.Debug("signal relay failed", "to", to, "type", msg.Type, "err", err)
	}
}
