package domain

import "context"

// NovelQuery carries the filter parameters for a catalog listing.
// Page is 1-based; repositories translate to whatever the transport wants.
type NovelQuery struct {
	CategoryID string
	Status     string // "", "ongoing", "completed", "hiatus"
	SortBy     string // resource-specific sort key
	Keyword    string // non-empty switches to search mode
	Page       int
	PageSize   int
}

// RankQuery carries the filter parameters for a leaderboard listing.
type RankQuery struct {
	TimeRange  string // "weekly", "monthly", "all"
	CategoryID string // novel boards only
	SortBy     string
	Page       int
	PageSize   int
}

// CatalogRepository provides novel browsing, search, and chapter content.
// Paginated methods return (items, totalElements, error).
type CatalogRepository interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetNovels(ctx context.Context, q NovelQuery) ([]Novel, int, error)
	GetNovel(ctx context.Context, novelID string) (*Novel, error)
	GetChapters(ctx context.Context, novelID string, page, pageSize int) ([]ChapterRef, int, error)
	GetChapter(ctx context.Context, novelID, chapterID string) (*Chapter, error)
}

// RankingRepository provides the leaderboard listings.
type RankingRepository interface {
	GetRankings(ctx context.Context, kind RankKind, q RankQuery) ([]RankEntry, int, error)
}

// ShelfRepository provides the user's library and reading history.
type ShelfRepository interface {
	GetLibrary(ctx context.Context, page, pageSize int) ([]LibraryEntry, int, error)
	AddToLibrary(ctx context.Context, novelID string) error
	RemoveFromLibrary(ctx context.Context, novelID string) error
	GetHistory(ctx context.Context, page, pageSize int) ([]HistoryEntry, int, error)
	RecordHistory(ctx context.Context, novelID, chapterID string) error
}

// SocialRepository provides reviews, comments, and review likes.
type SocialRepository interface {
	GetReviews(ctx context.Context, novelID string, page, pageSize int) ([]Review, int, error)
	CreateReview(ctx context.Context, novelID string, rating int, body string) (*Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
	SetReviewLiked(ctx context.Context, reviewID string, liked bool) error
	GetComments(ctx context.Context, chapterID string, page, pageSize int) ([]Comment, int, error)
	CreateComment(ctx context.Context, chapterID, body string) (*Comment, error)
}

// AuthResult is returned by a successful sign-in.
type AuthResult struct {
	Token    string
	UserID   string
	Username string
}

// ProfilePatch holds the editable profile fields. Nil means "leave unchanged".
type ProfilePatch struct {
	Username  *string
	Bio       *string
	AvatarURL *string
}

// UserRepository provides authentication and profile access.
type UserRepository interface {
	SignIn(ctx context.Context, username, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*UserProfile, error)
}
