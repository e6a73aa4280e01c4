package service

import (
	"log/slog"

	"github.com/lantalk/relay-service/internal/domain"
	"github.com/lantalk/relay-service/internal/store"
	"github.com/lantalk/relay-service/pkg/metrics"
)

// BroadcastService delivers one frame to every member of a room. A failed
// send marks the member dead; dead members are removed in one pass after
// the sweep. This is the only failure detection for peers that vanished
// without a close frame, so it runs on every chat and system notice.
type BroadcastService struct {
	rooms *store.RoomRegistry
	index *store.PublicIndex
}

func NewBroadcastService(rooms *store.RoomRegistry, index *store.PublicIndex) *BroadcastService {
	return &BroadcastService{rooms: rooms, index: index}
}

// Broadcast sends msg to every current member of room, self-inclusive.
// No retry: one failed send is enough to evict.
func (s *BroadcastService) Broadcast(room string, msg domain.Outbound) {
	members := s.rooms.Members(room)

	var dead []store.Member
	for _, m := range members {
		if err := m.Conn.Send(msg); err != nil {
			dead = append(dead, m)
		}
	}
	metrics.RelayedMessages.Inc()

	if len(dead) == 0 {
		return
	}
	s.rooms.Evict(room, dead)
	for _, m := range dead {
		if room == domain.PublicRoom && !m.Quiet {
			s.index.Remove(m.Name)
		}
		slog.Debug("member evicted", "room", room, "name", m.Name)
	}
	metrics.EvictedMembers.Add(float64(len(dead)))
}

// BroadcastRoster pushes the public user list to everyone in the public
// room. Called after every announcing public join and leave.
func (s *BroadcastService) BroadcastRoster() {
	names := s.rooms.Names(domain.PublicRoom)
	s.Broadcast(domain.PublicRoom, domain.UserList(domain.PublicRoom, names))
}
