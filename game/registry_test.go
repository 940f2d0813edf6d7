package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateValidatesPrice(t *testing.T) {
	r := NewRegistry(testConfig())

	s, err := r.Create(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.ID())
	assert.Equal(t, 10, s.EntryPrice())

	_, err = r.Create(15)
	requireKind(t, err, KindInvalidEntryPrice)
}

func TestRegistryMonotonicIDs(t *testing.T) {
	r := NewRegistry(testConfig())
	for i := 1; i <= 5; i++ {
		s, err := r.Create(20)
		require.NoError(t, err)
		assert.Equal(t, uint64(i), s.ID())
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(testConfig())
	s, err := r.Create(50)
	require.NoError(t, err)

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get(999)
	requireKind(t, err, KindSessionNotFound)
}

func TestRegistryListOpen(t *testing.T) {
	r := NewRegistry(testConfig())

	a, _ := r.Create(10)
	b, _ := r.Create(20)
	c, _ := r.Create(100)

	_, _, err := b.Join(1)
	require.NoError(t, err)

	// c goes active and drops out of the open list.
	_, _, _ = c.Join(1)
	_, _, _ = c.Join(2)
	require.Equal(t, StateActive, c.State())

	open := r.ListOpen()
	require.Len(t, open, 2)
	assert.Equal(t, OpenSession{ID: a.ID(), Players: 0, EntryPrice: 10}, open[0])
	assert.Equal(t, OpenSession{ID: b.ID(), Players: 1, EntryPrice: 20}, open[1])

	// Finished sessions stay resolvable but are never offered for joins.
	got, err := r.Get(c.ID())
	require.NoError(t, err)
	assert.Equal(t, StateActive, got.State())
}

func TestRegistryConcurrentCreate(t *testing.T) {
	r := NewRegistry(testConfig())

	const n = 40
	var wg sync.WaitGroup
	ids := make(chan uint64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Create(10)
			require.NoError(t, err)
			ids <- s.ID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, r.ListOpen(), n)
}

func TestRegistrySessionsIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 1
	r := NewRegistry(cfg)

	a, _ := r.Create(10)
	b, _ := r.Create(10)

	var wg sync.WaitGroup
	for _, s := range []*Session{a, b} {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			_, _, err := s.Join(1)
			require.NoError(t, err)
			for {
				_, ok, err := s.Draw()
				require.NoError(t, err)
				if !ok {
					return
				}
			}
		}(s)
	}
	wg.Wait()

	assert.Equal(t, StateFinished, a.State())
	assert.Equal(t, StateFinished, b.State())
}
