package store

import (
	"sync"

	"github.com/lantalk/relay-service/internal/domain"
)

// PublicIndex maps display name -> connection for announcing members of the
// public room. Signaling uses it to find the target of a private invite;
// quiet members never appear here.
type PublicIndex struct {
	mu    sync.RWMutex
	users map[string]domain.Conn
}

func NewPublicIndex() *PublicIndex {
	return &PublicIndex{users: make(map[string]domain.Conn)}
}

func (i *PublicIndex) Add(name string, c domain.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.users[name] = c
}

func (i *PublicIndex) Remove(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.users, name)
}

func (i *PublicIndex) Lookup(name string) (domain.Conn, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	c, ok := i.users[name]
	return c, ok
}
