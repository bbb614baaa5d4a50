package tui

import (
	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
)

// PageMsg carries the resolution of one paginated fetch back to the update
// loop. The originating request rides along so the controller's sequence gate
// can discard superseded resolutions.
type PageMsg[T any] struct {
	Req   pager.Request
	Items []T
	Total int
	Err   error
}

// CategoriesMsg delivers the category list.
type CategoriesMsg struct {
	Categories []domain.Category
	Err        error
}

// NovelMsg delivers a novel's detail.
type NovelMsg struct {
	Novel *domain.Novel
	Err   error
}

// ChapterMsg delivers a loaded chapter for the reader.
type ChapterMsg struct {
	Chapter *domain.Chapter
	Err     error
}

// TOCMsg delivers a page of a novel's table of contents.
type TOCMsg struct {
	NovelID string
	Refs    []domain.ChapterRef
	Total   int
	Err     error
}

// ShelfActionMsg reports an add/remove-library outcome.
type ShelfActionMsg struct {
	NovelID string
	Added   bool
	Err     error
}

// LikeToggledMsg reports a review like/unlike outcome.
type LikeToggledMsg struct {
	ReviewID string
	Liked    bool
	Err      error
}

// ReviewPostedMsg reports a created review.
type ReviewPostedMsg struct {
	Review *domain.Review
	Err    error
}

// ReviewDeletedMsg reports a deleted review.
type ReviewDeletedMsg struct {
	ReviewID string
	Err      error
}

// CommentPostedMsg reports a created comment.
type CommentPostedMsg struct {
	Comment *domain.Comment
	Err     error
}

// ProfileMsg delivers a profile (after load or edit).
type ProfileMsg struct {
	Profile *domain.UserProfile
	Err     error
}

// SignedOutMsg reports the sign-out outcome.
type SignedOutMsg struct {
	Err error
}

// StatusMsg shows a transient message in the status bar.
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message.
type ClearStatusMsg struct{}
