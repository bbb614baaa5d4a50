package api

import "encoding/json"

// pagedContainer is the paginated response shape:
//
//	{"content": [...], "totalElements": 123, "currentPage": 0}
//
// Some endpoints nest it under a "data" envelope; decodePage handles both.
type pagedContainer struct {
	Content       json.RawMessage `json:"content"`
	TotalElements int             `json:"totalElements"`
	CurrentPage   int             `json:"currentPage"`
}

// envelope is the optional response wrapper used by newer endpoints.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// decodePage parses a paginated response body, unwrapping the data envelope
// when present.
func decodePage(body []byte) (*pagedContainer, error) {
	var page pagedContainer
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	if page.Content != nil {
		return &page, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		// Empty page, not an error.
		return &page, nil
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// decodeObject parses a single-object response body, unwrapping the data
// envelope when present.
func decodeObject(body []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, dest)
	}
	return json.Unmarshal(body, dest)
}

type categoryDTO struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type novelDTO struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug,omitempty"`
	Title        string  `json:"title"`
	Author       string  `json:"authorName,omitempty"`
	AuthorID     string  `json:"authorId,omitempty"`
	Synopsis     string  `json:"synopsis,omitempty"`
	CategoryID   string  `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	Status       string  `json:"status,omitempty"`
	ChapterCount int     `json:"chapterCount,omitempty"`
	WordCount    int64   `json:"wordCount,omitempty"`
	Views        int64   `json:"viewCount,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	CoverURL     string  `json:"coverUrl,omitempty"`
	UpdatedAt    int64   `json:"updatedAt,omitempty"`
}

type chapterRefDTO struct {
	ID        string `json:"id"`
	Index     int    `json:"chapterNumber"`
	Title     string `json:"title"`
	WordCount int    `json:"wordCount,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type chapterDTO struct {
	ID        string `json:"id"`
	NovelID   string `json:"novelId"`
	Index     int    `json:"chapterNumber"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount,omitempty"`
	PrevID    string `json:"prevChapterId,omitempty"`
	NextID    string `json:"nextChapterId,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type rankEntryDTO struct {
	Position   int     `json:"rank"`
	NovelID    string  `json:"novelId,omitempty"`
	Title      string  `json:"title,omitempty"`
	Author     string  `json:"authorName,omitempty"`
	CategoryID string  `json:"categoryId,omitempty"`
	Views      int64   `json:"viewCount,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	UserID     string  `json:"userId,omitempty"`
	Username   string  `json:"username,omitempty"`
	AvatarURL  string  `json:"avatarUrl,omitempty"`
	Metric     int64   `json:"metric,omitempty"`
}

type reviewDTO struct {
	ID        string `json:"id"`
	NovelID   string `json:"novelId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Body      string `json:"content"`
	Likes     int    `json:"likeCount"`
	LikedByMe bool   `json:"likedByMe,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type commentDTO struct {
	ID        string `json:"id"`
	ChapterID string `json:"chapterId"`
	NovelID   string `json:"novelId,omitempty"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Body      string `json:"content"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type profileDTO struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Bio           string `json:"bio,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	NovelsWritten int    `json:"novelsWritten,omitempty"`
	ReadingTime   int64  `json:"readingTimeSeconds,omitempty"`
	JoinedAt      int64  `json:"joinedAt,omitempty"`
}

type libraryEntryDTO struct {
	Novel         novelDTO `json:"novel"`
	AddedAt       int64    `json:"addedAt,omitempty"`
	LastChapterID string   `json:"lastChapterId,omitempty"`
	LastChapter   int      `json:"lastChapterNumber,omitempty"`
}

type historyEntryDTO struct {
	Novel        novelDTO `json:"novel"`
	ChapterID    string   `json:"chapterId"`
	ChapterIndex int      `json:"chapterNumber,omitempty"`
	ChapterTitle string   `json:"chapterTitle,omitempty"`
	ReadAt       int64    `json:"readAt,omitempty"`
}

type authResponseDTO struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
