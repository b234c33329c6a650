package session

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func setupTestStore(ttl time.Duration) *Store {
	return NewStore(slog.Default(), rand.New(rand.NewPCG(1, 2)), ttl)
}

func TestStoreCreateAndGet(t *testing.T) {
	s := setupTestStore(time.Hour)

	session, err := s.Create(9, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	snap := session.Snapshot()
	assert.Equal(t, 9, snap.Rows)
	assert.Equal(t, 9, snap.Cols)
	assert.Equal(t, 10, snap.MineCount)
	assert.Equal(t, 10, snap.MinesRemaining)
	assert.Equal(t, mines.Ongoing, snap.Outcome)
	assert.Len(t, snap.Grid, 81)
	assert.Nil(t, snap.EndedAt)
}

func TestStoreCreateInvalid(t *testing.T) {
	s := setupTestStore(time.Hour)

	_, err := s.Create(3, 3, 5)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Zero(t, s.Len())
}

func TestStoreNotFound(t *testing.T) {
	s := setupTestStore(time.Hour)

	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(uuid.New()), ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(time.Hour)

	session, err := s.Create(9, 9, 10)
	require.NoError(t, err)
	require.NoError(t, s.Delete(session.ID))

	_, err = s.Get(session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionDoSerializes(t *testing.T) {
	s := setupTestStore(time.Hour)
	session, err := s.Create(16, 16, 40)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := session.Do(func(b *mines.Board) error {
				_, err := b.SecondaryAction(i/16, i%16)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 40-64, session.Snapshot().MinesRemaining)
}

func TestSessionEndedAt(t *testing.T) {
	s := setupTestStore(time.Hour)
	session, err := s.Create(9, 9, 72)
	require.NoError(t, err)

	err = session.Do(func(b *mines.Board) error {
		_, err := b.Reveal(4, 4)
		return err
	})
	require.NoError(t, err)

	snap := session.Snapshot()
	assert.Equal(t, mines.Won, snap.Outcome)
	require.NotNil(t, snap.EndedAt)
	assert.False(t, snap.EndedAt.Before(snap.CreatedAt))
}

func TestStoreSweep(t *testing.T) {
	s := setupTestStore(time.Minute)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	s.now = func() time.Time { return clock }

	idle, err := s.Create(9, 9, 10)
	require.NoError(t, err)
	active, err := s.Create(9, 9, 10)
	require.NoError(t, err)

	clock = start.Add(50 * time.Second)
	require.NoError(t, active.Do(func(b *mines.Board) error { return nil }))

	assert.Zero(t, s.Sweep(start.Add(30*time.Second)))
	assert.Equal(t, 1, s.Sweep(start.Add(90*time.Second)))

	_, err = s.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(active.ID)
	assert.NoError(t, err)
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := setupTestStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
