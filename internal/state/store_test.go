package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/seralin/inkwell/internal/log"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := Open(t.TempDir(), log.Null())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgress_RoundTrip(t *testing.T) {
	s := testStore(t)

	s.SaveProgress(ProgressRecord{
		NovelID:      "n1",
		ChapterID:    "c7",
		Progress:     0.42,
		ScrollOffset: 133,
	})

	rec, ok := s.Progress("n1")
	require.True(t, ok)
	assert.Equal(t, "c7", rec.ChapterID)
	assert.InDelta(t, 0.42, rec.Progress, 1e-9)
	assert.Equal(t, 133, rec.ScrollOffset)
	assert.False(t, rec.UpdatedAt.IsZero())

	// Overwrite with a newer position.
	s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "c8", Progress: 0.1})
	rec, ok = s.Progress("n1")
	require.True(t, ok)
	assert.Equal(t, "c8", rec.ChapterID)
}

func TestProgress_Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"overshoot", 1.04, 1},
		{"large", 250, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "c1", Progress: tt.in})
			rec, ok := s.Progress("n1")
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Progress)
		})
	}
}

func TestProgress_MissingIDsIgnored(t *testing.T) {
	s := testStore(t)

	s.SaveProgress(ProgressRecord{NovelID: "", ChapterID: "c1", Progress: 0.5})
	s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "", Progress: 0.5})

	_, ok := s.Progress("n1")
	assert.False(t, ok)
	_, ok = s.Progress("")
	assert.False(t, ok)
}

func TestProgress_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s := Open(dir, log.Null())
	s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "c3", Progress: 0.8, UpdatedAt: time.Now()})
	require.NoError(t, s.Close())

	s2 := Open(dir, log.Null())
	defer s2.Close()
	rec, ok := s2.Progress("n1")
	require.True(t, ok)
	assert.Equal(t, "c3", rec.ChapterID)
}

func TestProgress_CorruptValueReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()

	s := Open(dir, log.Null())
	s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "c1", Progress: 0.5})
	require.NoError(t, s.Close())

	// Scribble over the stored value behind the store's back.
	db, err := bolt.Open(dir+"/state.db", 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProgress).Put([]byte("n1"), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s2 := Open(dir, log.Null())
	defer s2.Close()
	_, ok := s2.Progress("n1")
	assert.False(t, ok, "corrupt record degrades to no saved state")
}

func TestOpen_MemoryOnlyFallback(t *testing.T) {
	// An empty dir means no persistence; everything still works in memory.
	s := Open("", log.Null())
	defer s.Close()

	s.SaveProgress(ProgressRecord{NovelID: "n1", ChapterID: "c1", Progress: 0.3})
	rec, ok := s.Progress("n1")
	require.True(t, ok)
	assert.Equal(t, "c1", rec.ChapterID)
}

func TestPrefs_MergeAcrossSaves(t *testing.T) {
	s := testStore(t)

	s.SavePrefs("browse", map[string]any{"viewMode": "grid"})
	s.SavePrefs("browse", map[string]any{"filters": map[string]any{"sortBy": "views"}})

	prefs := s.Prefs("browse")
	require.NotNil(t, prefs)

	mode, ok := DecodePref[string](prefs, "viewMode")
	require.True(t, ok)
	assert.Equal(t, "grid", mode, "earlier keys survive later partial saves")

	filters, ok := DecodePref[map[string]string](prefs, "filters")
	require.True(t, ok)
	assert.Equal(t, "views", filters["sortBy"])
}

func TestPrefs_KeyOverwriteWithinBlob(t *testing.T) {
	s := testStore(t)

	s.SavePrefs("rankings", map[string]any{"tab": 0})
	s.SavePrefs("rankings", map[string]any{"tab": 2})

	tab, ok := DecodePref[int](s.Prefs("rankings"), "tab")
	require.True(t, ok)
	assert.Equal(t, 2, tab)
}

func TestPrefs_AbsentAndUndecodable(t *testing.T) {
	s := testStore(t)

	assert.Nil(t, s.Prefs("never-saved"))

	s.SavePrefs("browse", map[string]any{"tab": "not-a-number"})
	_, ok := DecodePref[int](s.Prefs("browse"), "tab")
	assert.False(t, ok)
	_, ok = DecodePref[int](s.Prefs("browse"), "missing")
	assert.False(t, ok)
}

func TestLikes_PerUserNamespacing(t *testing.T) {
	s := testStore(t)

	s.SetLiked("reviews", "alice", "r1", true)
	s.SetLiked("reviews", "alice", "r2", true)
	s.SetLiked("reviews", "bob", "r9", true)

	assert.True(t, s.IsLiked("reviews", "alice", "r1"))
	assert.False(t, s.IsLiked("reviews", "bob", "r1"), "likes do not leak between users")
	assert.True(t, s.IsLiked("reviews", "bob", "r9"))

	// Unlike removes only that id.
	s.SetLiked("reviews", "alice", "r1", false)
	assert.False(t, s.IsLiked("reviews", "alice", "r1"))
	assert.True(t, s.IsLiked("reviews", "alice", "r2"))
}

func TestLikes_GuestFallback(t *testing.T) {
	s := testStore(t)

	s.SetLiked("reviews", "", "r1", true)
	assert.True(t, s.IsLiked("reviews", GuestUser, "r1"))
}

func TestLikes_ClearUser(t *testing.T) {
	s := testStore(t)

	s.SetLiked("reviews", "alice", "r1", true)
	s.SetLiked("reviews", "bob", "r2", true)

	s.ClearUser("alice")

	assert.Empty(t, s.LikedIDs("reviews", "alice"))
	assert.True(t, s.IsLiked("reviews", "bob", "r2"), "other accounts keep their likes")
}
