package store

import (
	"fmt"
	"sync"

	"github.com/lantalk/relay-service/internal/domain"
)

// Member is one connection registered in a room under its final display
// name. Quiet members (preview connections) take part in broadcast and in
// name disambiguation, but are hidden from rosters and never announced.
type Member struct {
	Conn  domain.Conn
	Name  string
	Quiet bool
}

// RoomRegistry keeps the live membership of every room. Membership is an
// ordered slice, not a set: broadcast and roster iteration must be stable
// in insertion order.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string][]Member
}

func NewRoomRegistry() *RoomRegistry {
	r := &RoomRegistry{rooms: make(map[string][]Member)}
	r.rooms[domain.PublicRoom] = nil
	return r
}

// Create registers an empty room. Idempotent.
func (r *RoomRegistry) Create(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[name]; !ok {
		r.rooms[name] = nil
	}
}

// Exists reports whether the room was ever created.
func (r *RoomRegistry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[name]
	return ok
}

// Join appends a member and returns the display name actually used: when
// the requested name is taken a two-digit suffix is appended, starting at
// 01, until free. Returns ok=false if the room was never created.
func (r *RoomRegistry) Join(room string, c domain.Conn, name string, quiet bool) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return "", false
	}

	final := name
	for i := 1; taken(members, final); i++ {
		final = fmt.Sprintf("%s%02d", name, i)
	}

	r.rooms[room] = append(members, Member{Conn: c, Name: final, Quiet: quiet})
	return final, true
}

func taken(members []Member, name string) bool {
	for _, m := range members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Leave removes the first member matching both connection and name.
// Absence is not an error: explicit leave and eviction may race.
func (r *RoomRegistry) Leave(room string, c domain.Conn, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[room]
	for i, m := range members {
		if m.Conn == c && m.Name == name {
			r.rooms[room] = append(members[:i:i], members[i+1:]...)
			return
		}
	}
}

// Members returns a snapshot of the room's membership for iteration.
func (r *RoomRegistry) Members(room string) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	out := make([]Member, len(members))
	copy(out, members)
	return out
}

// Names lists announcing members in insertion order; quiet members are
// hidden from rosters.
func (r *RoomRegistry) Names(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.rooms[room]))
	for _, m := range r.rooms[room] {
		if !m.Quiet {
			out = append(out, m.Name)
		}
	}
	return out
}

// Evict removes the given members in one pass. Used by broadcast after a
// full send sweep; removal never happens while iterating live membership.
func (r *RoomRegistry) Evict(room string, dead []Member) {
	if len(dead) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return
	}
	kept := members[:0:0]
	for _, m := range members {
		if !isDead(dead, m) {
			kept = append(kept, m)
		}
	}
	r.rooms[room] = kept
}

func isDead(dead []Member, m Member) bool {
	for _, d := range dead {
		if d.Conn == m.Conn && d.Name == m.Name {
			return true
		}
	}
	return false
}
