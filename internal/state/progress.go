package state

import "time"

// ProgressRecord is the saved reading position for one novel. ScrollOffset is
// only meaningful while ChapterID matches the chapter being opened; callers
// must check that before restoring scroll.
type ProgressRecord struct {
	NovelID      string    `json:"novelId"`
	ChapterID    string    `json:"chapterId"`
	Progress     float64   `json:"progress"` // fraction of the chapter read, 0..1
	ScrollOffset int       `json:"scrollOffset"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SaveProgress stores the reading position for a novel, overwriting any
// previous record. A record missing either id is ignored — the reader calls
// this from scroll handlers that can fire before a chapter finishes loading.
// Progress is clamped to [0, 1]; scroll-ratio math transiently overshoots at
// the end of a chapter.
func (s *Store) SaveProgress(rec ProgressRecord) {
	if rec.NovelID == "" || rec.ChapterID == "" {
		return
	}
	if rec.Progress < 0 {
		rec.Progress = 0
	} else if rec.Progress > 1 {
		rec.Progress = 1
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	s.put(bucketProgress, rec.NovelID, rec)
}

// Progress returns the saved reading position for a novel, if any.
func (s *Store) Progress(novelID string) (ProgressRecord, bool) {
	var rec ProgressRecord
	if novelID == "" || !s.get(bucketProgress, novelID, &rec) {
		return ProgressRecord{}, false
	}
	return rec, true
}
