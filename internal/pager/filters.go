// Package pager drives paginated list fetching for the TUI: initial load,
// incremental load-more, filter-driven replace, and user retry. A controller
// never talks to the network itself; it hands out request descriptors and
// accepts resolutions, discarding any resolution that a newer request has
// superseded.
package pager

// Kind identifies the list-shaped resource a controller is driving. Filter
// validity (sort keys, time ranges) is resource-specific.
type Kind string

const (
	KindBrowse      Kind = "browse"
	KindRankNovels  Kind = "rank-novels"
	KindRankReaders Kind = "rank-readers"
	KindRankWriters Kind = "rank-writers"
	KindLibrary     Kind = "library"
	KindHistory     Kind = "history"
	KindReviews     Kind = "reviews"
	KindComments    Kind = "comments"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FilterSet is the complete set of query parameters for one list. It is only
// mutated through patch-merge followed by Normalize, so every field a request
// carries is known-good.
type FilterSet struct {
	Kind     Kind   `json:"kind"`
	Category string `json:"category,omitempty"` // category slug from the UI or a deep link; "" = all
	Status   string `json:"status,omitempty"`   // browse only
	SortBy   string `json:"sortBy,omitempty"`
	Range    string `json:"range,omitempty"`   // rankings only: weekly / monthly / all
	Keyword  string `json:"keyword,omitempty"` // browse only; non-empty means search mode
	PageSize int    `json:"pageSize,omitempty"`
}

// Patch is a partial FilterSet. Nil fields are left unchanged by Merge.
type Patch struct {
	Category *string
	Status   *string
	SortBy   *string
	Range    *string
	Keyword  *string
	PageSize *int
}

// Str is a convenience for building patches.
func Str(v string) *string { return &v }

// Num is a convenience for building patches.
func Num(v int) *int { return &v }

// Merge applies a patch over the filter set and returns the result.
func (fs FilterSet) Merge(p Patch) FilterSet {
	if p.Category != nil {
		fs.Category = *p.Category
	}
	if p.Status != nil {
		fs.Status = *p.Status
	}
	if p.SortBy != nil {
		fs.SortBy = *p.SortBy
	}
	if p.Range != nil {
		fs.Range = *p.Range
	}
	if p.Keyword != nil {
		fs.Keyword = *p.Keyword
	}
	if p.PageSize != nil {
		fs.PageSize = *p.PageSize
	}
	return fs
}

var kindSorts = map[Kind][]string{
	KindBrowse:      {"updated", "views", "rating", "words"},
	KindRankNovels:  {"views", "rating", "collections"},
	KindRankReaders: {"reading-time"},
	KindRankWriters: {"words", "views"},
	KindReviews:     {"newest", "likes"},
}

var kindDefaultSort = map[Kind]string{
	KindBrowse:      "updated",
	KindRankNovels:  "views",
	KindRankReaders: "reading-time",
	KindRankWriters: "words",
	KindReviews:     "newest",
}

var validStatuses = []string{"ongoing", "completed", "hiatus"}

var validRanges = []string{"weekly", "monthly", "all"}

// rankingKind reports whether the kind is one of the leaderboard tabs.
func rankingKind(k Kind) bool {
	switch k {
	case KindRankNovels, KindRankReaders, KindRankWriters:
		return true
	}
	return false
}

// Normalize coerces every field to a value valid for the set's kind. Stale
// values survive tab switches (the rankings page keeps one persisted filter
// blob across tabs), so an out-of-range sort key or time range falls back to
// the kind's default rather than reaching the server.
func Normalize(fs FilterSet) FilterSet {
	if fs.PageSize < 1 || fs.PageSize > maxPageSize {
		fs.PageSize = defaultPageSize
	}

	if sorts, ok := kindSorts[fs.Kind]; ok {
		if !contains(sorts, fs.SortBy) {
			fs.SortBy = kindDefaultSort[fs.Kind]
		}
	} else {
		fs.SortBy = ""
	}

	if fs.Kind == KindBrowse {
		if fs.Status != "" && !contains(validStatuses, fs.Status) {
			fs.Status = ""
		}
	} else {
		fs.Status = ""
		fs.Keyword = ""
	}

	if rankingKind(fs.Kind) {
		if !contains(validRanges, fs.Range) {
			fs.Range = "weekly"
		}
	} else {
		fs.Range = ""
	}

	if fs.Kind != KindBrowse && fs.Kind != KindRankNovels {
		fs.Category = ""
	}

	return fs
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
