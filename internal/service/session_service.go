package service

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lantalk/relay-service/internal/domain"
	"github.com/lantalk/relay-service/internal/store"
)

// SessionService owns the per-connection control flow: resolve the target
// room, register membership, pump inbound frames to broadcast or signaling,
// and clean up exactly once on exit.
type SessionService struct {
	rooms  *store.RoomRegistry
	tokens *store.TokenDirectory
	index  *store.PublicIndex
	bcast  *BroadcastService
	signal *SignalService
}

func NewSessionService(
	rooms *store.RoomRegistry,
	tokens *store.TokenDirectory,
	index *store.PublicIndex,
	bcast *BroadcastService,
	signal *SignalService,
) *SessionService {
	return &SessionService{
		rooms:  rooms,
		tokens: tokens,
		index:  index,
		bcast:  bcast,
		signal: signal,
	}
}

// Resolve maps the dialed identifier — "public" or a token — to a concrete
// room name.
func (s *SessionService) Resolve(roomOrToken string) (string, bool) {
	if roomOrToken == domain.PublicRoom {
		return domain.PublicRoom, true
	}
	return s.tokens.Resolve(roomOrToken)
}

// Run drives one connection from join to disconnect and blocks until the
// peer is gone. announce=false is a preview session: it is never announced,
// never indexed for signaling, and hidden from rosters.
//
// Каждое соединение живёт в своей горутине; всё общее состояние за
// мьютексами в store.
func (s *SessionService) Run(conn domain.Conn, roomOrToken, username string, announce bool) {
	room, ok := s.Resolve(roomOrToken)
	if !ok {
		_ = conn.Send(domain.SystemNotice("Invalid room/token"))
		_ = conn.Close()
		return
	}

	name, ok := s.rooms.Join(room, conn, username, !announce)
	if !ok {
		// комната была удалена между Resolve и Join
		_ = conn.Send(domain.SystemNotice("Invalid room/token"))
		_ = conn.Close()
		return
	}
	defer s.leave(conn, room, roomOrToken, name, announce)

	if announce {
		if room == domain.PublicRoom {
			s.index.Add(name, conn)
			s.bcast.BroadcastRoster()
		}
		s.bcast.Broadcast(room, domain.SystemNotice(fmt.Sprintf("%s joined %s", name, roomOrToken)))
	}
	slog.Info("session started", "room", room, "name", name, "announce", announce)

	for {
		raw, err := conn.Receive()
		if err != nil {
			return
		}
		s.dispatch(conn, room, name, raw)
	}
}

// dispatch routes one inbound frame. Unparsable text degrades to plain
// chat; a parsed frame with an unknown type is silently dropped.
func (s *SessionService) dispatch(conn domain.Conn, room, name string, raw []byte) {
	var in domain.Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		s.bcast.Broadcast(room, domain.ChatFrom(name, string(raw)))
		return
	}

	switch in.Type {
	case domain.TypeChat:
		s.bcast.Broadcast(room, domain.ChatFrom(name, in.Text))
	case domain.TypePrivateRequest:
		s.signal.Request(room, name, in.To, in.Token)
	case domain.TypePrivateAccept:
		s.signal.Accept(room, name, in.To, in.Token)
	case domain.TypePrivateDeny:
		s.signal.Deny(room, name, in.To, in.Token)
	case domain.TypeWho:
		_ = conn.Send(domain.UserList(room, s.rooms.Names(room)))
	default:
		// ignore
	}
}

// leave deregisters the member and announces the departure to whoever is
// left. Runs via defer, so it fires exactly once however the loop exits.
func (s *SessionService) leave(conn domain.Conn, room, roomOrToken, name string, announce bool) {
	s.rooms.Leave(room, conn, name)

	if announce {
		if room == domain.PublicRoom {
			s.index.Remove(name)
			s.bcast.BroadcastRoster()
		}
		s.bcast.Broadcast(room, domain.SystemNotice(fmt.Sprintf("%s left %s", name, roomOrToken)))
	}
	slog.Info("session ended", "room", room, "name", name)
}
