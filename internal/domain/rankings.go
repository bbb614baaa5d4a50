package domain

// RankKind selects which leaderboard a rank entry belongs to.
type RankKind string

const (
	RankNovels  RankKind = "novels"
	RankReaders RankKind = "readers"
	RankWriters RankKind = "writers"
)

// RankEntry is one row of a leaderboard. Novel boards populate the Novel
// fields; reader/writer boards populate the user fields.
type RankEntry struct {
	Kind     RankKind
	Position int // 1-based rank position

	// Novel boards
	NovelID    string
	Title      string
	Author     string
	CategoryID string
	Views      int64
	Rating     float64

	// Reader/writer boards
	UserID    string
	Username  string
	AvatarURL string
	// Metric is the board-specific score: reading time for readers,
	// total words published for writers.
	Metric int64
}

// DisplayName returns the row's primary label regardless of board kind.
func (e RankEntry) DisplayName() string {
	if e.Kind == RankNovels {
		return e.Title
	}
	return e.Username
}
