package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lantalk/relay-service/internal/domain"
)

func TestIssue_RoundTrip(t *testing.T) {
	rooms := NewRoomRegistry()
	d := NewTokenDirectory(rooms)

	token, err := d.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 6)

	room, ok := d.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "room_"+token, room)
	assert.True(t, rooms.Exists(room), "issued token must have a backing room")
}

func TestIssue_UniqueTokens(t *testing.T) {
	d := NewTokenDirectory(NewRoomRegistry())

	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		token, err := d.Issue()
		require.NoError(t, err)
		require.False(t, seen[token], "token %q issued twice", token)
		seen[token] = true
	}
}

func TestEnsure_ConvergesOnOneRoom(t *testing.T) {
	rooms := NewRoomRegistry()
	d := NewTokenDirectory(rooms)

	first := d.Ensure("abc123")
	second := d.Ensure("abc123")

	assert.Equal(t, first, second)
	assert.Equal(t, "room_abc123", first)
	assert.True(t, rooms.Exists("room_abc123"))
}

func TestDelete(t *testing.T) {
	rooms := NewRoomRegistry()
	d := NewTokenDirectory(rooms)
	token, err := d.Issue()
	require.NoError(t, err)

	require.NoError(t, d.Delete(token))

	_, ok := d.Resolve(token)
	assert.False(t, ok)
	assert.Empty(t, d.List())

	// the orphaned room is kept; only the mapping goes away
	assert.True(t, rooms.Exists("room_"+token))

	assert.ErrorIs(t, d.Delete(token), domain.ErrTokenNotFound)
	assert.ErrorIs(t, d.Delete("never-seen"), domain.ErrTokenNotFound)
}

func TestList(t *testing.T) {
	d := NewTokenDirectory(NewRoomRegistry())
	assert.Empty(t, d.List())

	d.Ensure("aaa111")
	d.Ensure("bbb222")

	assert.ElementsMatch(t, []string{"aaa111", "bbb222"}, d.List())
}
