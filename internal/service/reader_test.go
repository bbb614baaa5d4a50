package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralin/inkwell/internal/log"
	"github.com/seralin/inkwell/internal/state"
)

// fakeClock steps time manually for throttle tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time            { return c.t }
func (c *fakeClock) advance(d time.Duration)   { c.t = c.t.Add(d) }

func newTestTracker(t *testing.T) (*ProgressTracker, *state.Store, *fakeClock) {
	t.Helper()
	store := state.Open(t.TempDir(), log.Null())
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	tracker := &ProgressTracker{
		store:    store,
		novelID:  "n1",
		interval: 2 * time.Second,
		now:      clock.now,
	}
	return tracker, store, clock
}

func TestProgressTracker_ThrottlesWrites(t *testing.T) {
	tracker, store, clock := newTestTracker(t)

	// First report always writes (lastWrite is zero).
	tracker.Track("c1", 0.1, 10)
	rec, ok := store.Progress("n1")
	require.True(t, ok)
	assert.InDelta(t, 0.1, rec.Progress, 1e-9)

	// Reports inside the interval are held, not written.
	clock.advance(500 * time.Millisecond)
	tracker.Track("c1", 0.2, 20)
	clock.advance(500 * time.Millisecond)
	tracker.Track("c1", 0.3, 30)

	rec, _ = store.Progress("n1")
	assert.InDelta(t, 0.1, rec.Progress, 1e-9, "throttled positions stay pending")

	// Past the interval the next report writes through.
	clock.advance(2 * time.Second)
	tracker.Track("c1", 0.4, 40)
	rec, _ = store.Progress("n1")
	assert.InDelta(t, 0.4, rec.Progress, 1e-9)
	assert.Equal(t, 40, rec.ScrollOffset)
}

func TestProgressTracker_FlushWritesPending(t *testing.T) {
	tracker, store, clock := newTestTracker(t)

	tracker.Track("c1", 0.1, 10)
	clock.advance(100 * time.Millisecond)
	tracker.Track("c1", 0.9, 90)

	// Leaving the chapter flushes the held position.
	tracker.Flush()
	rec, ok := store.Progress("n1")
	require.True(t, ok)
	assert.InDelta(t, 0.9, rec.Progress, 1e-9)
	assert.Equal(t, 90, rec.ScrollOffset)

	// A second flush with nothing pending is a no-op.
	tracker.Flush()
	rec, _ = store.Progress("n1")
	assert.Equal(t, 90, rec.ScrollOffset)
}

func TestProgressTracker_IgnoresEmptyChapter(t *testing.T) {
	tracker, store, _ := newTestTracker(t)

	tracker.Track("", 0.5, 50)
	tracker.Flush()

	_, ok := store.Progress("n1")
	assert.False(t, ok, "scroll events before the chapter loads are dropped")
}

func TestReaderService_RestorePoint(t *testing.T) {
	store := state.Open(t.TempDir(), log.Null())
	t.Cleanup(func() { store.Close() })

	svc := NewReaderService(nil, nil, store, log.Null())

	store.SaveProgress(state.ProgressRecord{
		NovelID: "n1", ChapterID: "c3", Progress: 0.7, ScrollOffset: 42,
	})

	off, ok := svc.RestorePoint("n1", "c3")
	require.True(t, ok)
	assert.Equal(t, 42, off)

	// A position saved in a different chapter is not trusted here.
	_, ok = svc.RestorePoint("n1", "c4")
	assert.False(t, ok)

	_, ok = svc.RestorePoint("n2", "c3")
	assert.False(t, ok)
}
