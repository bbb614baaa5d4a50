package domain

import (
	"fmt"
	"strings"
)

// NovelStatus describes the publication state of a novel.
type NovelStatus string

const (
	StatusOngoing   NovelStatus = "ongoing"
	StatusCompleted NovelStatus = "completed"
	StatusHiatus    NovelStatus = "hiatus"
)

// Novel represents one work in the catalog.
type Novel struct {
	ID         string      // Server-assigned unique identifier
	Slug       string      // URL-friendly identifier
	Title      string      // Display title
	Author     string      // Author display name
	AuthorID   string      // Author user ID
	Synopsis   string      // Blurb shown on the detail view
	CategoryID string      // Category the novel belongs to
	Category   string      // Category display name
	Status     NovelStatus // ongoing / completed / hiatus
	Chapters   int         // Published chapter count
	WordCount  int64       // Total word count
	Views      int64       // Lifetime view count
	Rating     float64     // Average review rating, 0-5 scale
	CoverURL   string      // Cover image URL
	UpdatedAt  int64       // Unix timestamp of the last chapter update
}

// StatusLabel returns the status in display form.
func (n Novel) StatusLabel() string {
	switch n.Status {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	case StatusHiatus:
		return "Hiatus"
	default:
		return string(n.Status)
	}
}

// FormattedWordCount returns the word count in a compact human-readable form.
func (n Novel) FormattedWordCount() string {
	switch {
	case n.WordCount >= 1_000_000:
		return fmt.Sprintf("%.1fM words", float64(n.WordCount)/1_000_000)
	case n.WordCount >= 1_000:
		return fmt.Sprintf("%.0fK words", float64(n.WordCount)/1_000)
	case n.WordCount > 0:
		return fmt.Sprintf("%d words", n.WordCount)
	default:
		return ""
	}
}

// Chapter is a single chapter with its full content.
type Chapter struct {
	ID        string // Server-assigned unique identifier
	NovelID   string // Parent novel ID
	Index     int    // 1-based position within the novel
	Title     string // Chapter title
	Content   string // Chapter body text
	WordCount int
	PrevID    string // Previous chapter ID, empty at the start
	NextID    string // Next chapter ID, empty at the end
	CreatedAt int64
}

// ChapterRef is one row of a novel's table of contents.
type ChapterRef struct {
	ID        string
	Index     int
	Title     string
	WordCount int
	CreatedAt int64
}

// Category is a browsable genre grouping.
type Category struct {
	ID   string
	Slug string
	Name string
}

// CategorySet resolves category slugs to server IDs. Deep links carry slugs;
// the API wants IDs. An unknown slug must resolve to ok=false so callers can
// short-circuit instead of issuing a doomed request.
type CategorySet struct {
	bySlug map[string]Category
}

// NewCategorySet builds a CategorySet from a category list.
func NewCategorySet(cats []Category) *CategorySet {
	bySlug := make(map[string]Category, len(cats))
	for _, c := range cats {
		bySlug[strings.ToLower(c.Slug)] = c
	}
	return &CategorySet{bySlug: bySlug}
}

// Resolve maps a slug to its category. The empty slug means "all categories"
// and resolves to an empty Category with ok=true.
func (s *CategorySet) Resolve(slug string) (Category, bool) {
	if slug == "" {
		return Category{}, true
	}
	if s == nil || s.bySlug == nil {
		return Category{}, false
	}
	c, ok := s.bySlug[strings.ToLower(slug)]
	return c, ok
}

// Len returns the number of known categories.
func (s *CategorySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bySlug)
}
