package domain

// Review is a user review of a novel.
type Review struct {
	ID        string
	NovelID   string
	UserID    string
	Username  string
	Rating    int // 1-5 stars
	Body      string
	Likes     int
	LikedByMe bool
	CreatedAt int64
}

// Comment is a chapter-scoped reader comment.
type Comment struct {
	ID        string
	ChapterID string
	NovelID   string
	UserID    string
	Username  string
	Body      string
	CreatedAt int64
}

// UserProfile is the signed-in user's (or another user's) public profile.
type UserProfile struct {
	ID        string
	Username  string
	Bio       string
	AvatarURL string
	// Aggregates shown on the profile view.
	NovelsWritten int
	ReadingTime   int64 // Total seconds spent reading
	JoinedAt      int64
}

// LibraryEntry is a novel the user has saved to their library.
type LibraryEntry struct {
	Novel         Novel
	AddedAt       int64
	LastChapterID string // Most recently read chapter, empty if unread
	LastChapter   int    // 1-based index of that chapter
}

// HistoryEntry records one reading session.
type HistoryEntry struct {
	Novel        Novel
	ChapterID    string
	ChapterIndex int
	ChapterTitle string
	ReadAt       int64
}
