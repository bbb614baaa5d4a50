package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/state"
)

// saveInterval throttles progress writes: the reader reports position on
// every scroll event, but at most one write per interval hits the store.
const saveInterval = 2 * time.Second

// ReaderService handles chapter loading and reading-progress persistence.
type ReaderService struct {
	catalog domain.CatalogRepository
	shelf   domain.ShelfRepository
	store   *state.Store
	logger  *slog.Logger
}

// NewReaderService creates a new reader service.
func NewReaderService(catalog domain.CatalogRepository, shelf domain.ShelfRepository, store *state.Store, logger *slog.Logger) *ReaderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaderService{catalog: catalog, shelf: shelf, store: store, logger: logger}
}

// Chapter loads a chapter and reports the reading session to the server.
// The history write is best-effort; a failure only logs.
func (s *ReaderService) Chapter(ctx context.Context, novelID, chapterID string) (*domain.Chapter, error) {
	ch, err := s.catalog.GetChapter(ctx, novelID, chapterID)
	if err != nil {
		return nil, err
	}

	if err := s.shelf.RecordHistory(ctx, novelID, ch.ID); err != nil {
		s.logger.Debug("failed to record history", "novel", novelID, "chapter", ch.ID, "error", err)
	}

	return ch, nil
}

// RestorePoint returns the saved scroll offset for a chapter. Only a record
// whose stored chapter matches the one being opened is trusted; a position
// saved in some other chapter is meaningless here.
func (s *ReaderService) RestorePoint(novelID, chapterID string) (int, bool) {
	rec, ok := s.store.Progress(novelID)
	if !ok || rec.ChapterID != chapterID {
		return 0, false
	}
	return rec.ScrollOffset, true
}

// LastRead returns the saved reading position for a novel, used by the detail
// view's "continue reading" entry.
func (s *ReaderService) LastRead(novelID string) (state.ProgressRecord, bool) {
	return s.store.Progress(novelID)
}

// Tracker creates a progress tracker for one novel's reading session.
func (s *ReaderService) Tracker(novelID string) *ProgressTracker {
	return &ProgressTracker{
		store:    s.store,
		novelID:  novelID,
		interval: saveInterval,
		now:      time.Now,
	}
}

// ProgressTracker debounces progress writes for a reading session. Not safe
// for concurrent use; the TUI calls it from the update loop only.
type ProgressTracker struct {
	store    *state.Store
	novelID  string
	interval time.Duration
	now      func() time.Time

	lastWrite time.Time
	pending   *state.ProgressRecord
}

// Track records the current position. The write is deferred until the
// throttle interval has passed; the latest position always wins.
func (t *ProgressTracker) Track(chapterID string, progress float64, scrollOffset int) {
	if chapterID == "" {
		return
	}
	rec := state.ProgressRecord{
		NovelID:      t.novelID,
		ChapterID:    chapterID,
		Progress:     progress,
		ScrollOffset: scrollOffset,
		UpdatedAt:    t.now(),
	}
	if t.now().Sub(t.lastWrite) >= t.interval {
		t.store.SaveProgress(rec)
		t.lastWrite = t.now()
		t.pending = nil
		return
	}
	t.pending = &rec
}

// Flush writes any held position immediately. Called when leaving a chapter
// or quitting, so the last scroll before exit is never lost to the throttle.
func (t *ProgressTracker) Flush() {
	if t.pending == nil {
		return
	}
	t.store.SaveProgress(*t.pending)
	t.lastWrite = t.now()
	t.pending = nil
}
