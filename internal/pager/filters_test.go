package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SortCoercion(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		sort string
		want string
	}{
		{"browse_valid", KindBrowse, "views", "views"},
		{"browse_invalid", KindBrowse, "reading-time", "updated"},
		{"browse_empty", KindBrowse, "", "updated"},
		{"rank_novels_valid", KindRankNovels, "collections", "collections"},
		{"rank_novels_stale_from_other_tab", KindRankNovels, "reading-time", "views"},
		{"rank_readers_anything", KindRankReaders, "views", "reading-time"},
		{"reviews_valid", KindReviews, "likes", "likes"},
		{"library_has_no_sort", KindLibrary, "updated", ""},
		{"history_has_no_sort", KindHistory, "newest", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FilterSet{Kind: tt.kind, SortBy: tt.sort})
			assert.Equal(t, tt.want, got.SortBy)
		})
	}
}

func TestNormalize_KindScopedFields(t *testing.T) {
	t.Run("status_only_for_browse", func(t *testing.T) {
		fs := Normalize(FilterSet{Kind: KindBrowse, Status: "completed"})
		assert.Equal(t, "completed", fs.Status)

		fs = Normalize(FilterSet{Kind: KindBrowse, Status: "cancelled"})
		assert.Empty(t, fs.Status)

		fs = Normalize(FilterSet{Kind: KindRankNovels, Status: "completed"})
		assert.Empty(t, fs.Status)
	})

	t.Run("range_only_for_rankings", func(t *testing.T) {
		fs := Normalize(FilterSet{Kind: KindRankReaders, Range: "monthly"})
		assert.Equal(t, "monthly", fs.Range)

		fs = Normalize(FilterSet{Kind: KindRankReaders, Range: "yearly"})
		assert.Equal(t, "weekly", fs.Range, "invalid range falls back to weekly")

		fs = Normalize(FilterSet{Kind: KindRankWriters})
		assert.Equal(t, "weekly", fs.Range)

		fs = Normalize(FilterSet{Kind: KindBrowse, Range: "weekly"})
		assert.Empty(t, fs.Range)
	})

	t.Run("category_only_where_meaningful", func(t *testing.T) {
		fs := Normalize(FilterSet{Kind: KindBrowse, Category: "fantasy"})
		assert.Equal(t, "fantasy", fs.Category)

		fs = Normalize(FilterSet{Kind: KindRankNovels, Category: "fantasy"})
		assert.Equal(t, "fantasy", fs.Category)

		fs = Normalize(FilterSet{Kind: KindRankReaders, Category: "fantasy"})
		assert.Empty(t, fs.Category)

		fs = Normalize(FilterSet{Kind: KindLibrary, Category: "fantasy"})
		assert.Empty(t, fs.Category)
	})

	t.Run("keyword_only_for_browse", func(t *testing.T) {
		fs := Normalize(FilterSet{Kind: KindBrowse, Keyword: "sword"})
		assert.Equal(t, "sword", fs.Keyword)

		fs = Normalize(FilterSet{Kind: KindHistory, Keyword: "sword"})
		assert.Empty(t, fs.Keyword)
	})
}

func TestNormalize_PageSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero_gets_default", 0, 20},
		{"negative_gets_default", -5, 20},
		{"valid_kept", 50, 50},
		{"max_kept", 100, 100},
		{"over_max_gets_default", 500, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FilterSet{Kind: KindBrowse, PageSize: tt.in})
			assert.Equal(t, tt.want, got.PageSize)
		})
	}
}

func TestMerge_NilFieldsUnchanged(t *testing.T) {
	base := FilterSet{Kind: KindBrowse, Category: "fantasy", SortBy: "views", Keyword: "sword", PageSize: 20}

	merged := base.Merge(Patch{Keyword: Str("")})
	assert.Empty(t, merged.Keyword, "explicit empty string clears the field")
	assert.Equal(t, "fantasy", merged.Category)
	assert.Equal(t, "views", merged.SortBy)
	assert.Equal(t, 20, merged.PageSize)

	merged = base.Merge(Patch{PageSize: Num(50)})
	assert.Equal(t, 50, merged.PageSize)
	assert.Equal(t, "sword", merged.Keyword)
}
