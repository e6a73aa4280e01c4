package store

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"sync"

	"github.com/lantalk/relay-service/internal/domain"
)

// tokenBytes gives 6 hex chars; collisions are negligible at LAN scale.
const tokenBytes = 3

const roomPrefix = "room_"

// RoomCreator is the slice of RoomRegistry the directory needs to keep its
// invariant: every mapped token points at an existing (possibly empty) room.
type RoomCreator interface {
	Create(name string)
}

// TokenDirectory maps short opaque tokens to private room names.
type TokenDirectory struct {
	mu     sync.Mutex
	tokens map[string]string
	rooms  RoomCreator
}

func NewTokenDirectory(rooms RoomCreator) *TokenDirectory {
	return &TokenDirectory{tokens: make(map[string]string), rooms: rooms}
}

// RoomName derives the private room name for a token.
func RoomName(token string) string {
	return roomPrefix + token
}

// Issue mints a fresh token, registers its room mapping and ensures the
// room exists. The returned token is guaranteed unused.
func (d *TokenDirectory) Issue() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		if _, exists := d.tokens[token]; exists {
			continue
		}
		d.register(token)
		return token, nil
	}
}

// Ensure registers a client-chosen token, or reuses the existing mapping if
// the token is already known. Two private requests carrying the same token
// converge on one room. Returns the room name.
func (d *TokenDirectory) Ensure(token string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if room, ok := d.tokens[token]; ok {
		return room
	}
	return d.register(token)
}

// register caller must hold d.mu.
func (d *TokenDirectory) register(token string) string {
	room := RoomName(token)
	d.tokens[token] = room
	d.rooms.Create(room)
	return room
}

// Resolve maps a token to its room name.
func (d *TokenDirectory) Resolve(token string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.tokens[token]
	return room, ok
}

// Delete drops the token mapping only. A still-populated room keeps its
// members but becomes unreachable to new joiners; that matches the
// reference behavior and is not cleaned up here.
func (d *TokenDirectory) Delete(token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tokens[token]; !ok {
		return domain.ErrTokenNotFound
	}
	delete(d.tokens, token)
	return nil
}

// List returns all known tokens.
func (d *TokenDirectory) List() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, 0, len(d.tokens))
	for t := range d.tokens {
		out = append(out, t)
	}
	return out
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
