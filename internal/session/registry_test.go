package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetCreatesAndReuses(t *testing.T) {
	r := NewRegistry(0)

	id, s := r.Get("")
	require.NotEmpty(t, id)
	_, err := s.Add(testEntry("A"))
	require.NoError(t, err)

	id2, s2 := r.Get(id)
	assert.Equal(t, id, id2)
	assert.Same(t, s, s2)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UnknownIDGetsFreshSession(t *testing.T) {
	r := NewRegistry(0)

	id, s := r.Get("forged")
	assert.NotEqual(t, "forged", id)
	assert.Equal(t, 0, s.Len())
}

func TestRegistry_EvictsIdle(t *testing.T) {
	r := NewRegistry(time.Hour)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	id, _ := r.Get("")
	now = now.Add(30 * time.Minute)
	id2, _ := r.Get(id)
	assert.Equal(t, id, id2)

	now = now.Add(2 * time.Hour)
	id3, _ := r.Get(id)
	assert.NotEqual(t, id, id3)
	assert.Equal(t, 1, r.Len())
}
