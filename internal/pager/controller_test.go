package pager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralin/inkwell/internal/domain"
)

// page builds n fake items labeled for the given page.
func page(pageNum, n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("p%d-%d", pageNum, i)
	}
	return items
}

func TestController_StartAndLoadMore(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	req, ok := c.Start()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.True(t, req.Replace)
	assert.True(t, c.State().LoadingInitial)

	require.True(t, c.Resolve(req, page(1, 20), 50, nil))
	st := c.State()
	assert.Len(t, st.Items, 20)
	assert.Equal(t, 50, st.Total)
	assert.True(t, st.HasMore)
	assert.False(t, st.LoadingInitial)

	req2, ok := c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, req2.Page)
	assert.False(t, req2.Replace)

	require.True(t, c.Resolve(req2, page(2, 20), 50, nil))
	assert.Len(t, c.State().Items, 40)

	// Third page comes back short: the list is exhausted.
	req3, ok := c.LoadMore()
	require.True(t, ok)
	require.True(t, c.Resolve(req3, page(3, 10), 50, nil))
	st = c.State()
	assert.Len(t, st.Items, 50)
	assert.False(t, st.HasMore)

	_, ok = c.LoadMore()
	assert.False(t, ok, "exhausted list must not issue another request")
}

func TestController_LoadMoreWhileLoading(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	req, _ := c.Start()
	c.Resolve(req, page(1, 20), 100, nil)

	req2, ok := c.LoadMore()
	require.True(t, ok)

	// Repeated scroll events while the fetch is in flight are no-ops.
	_, ok = c.LoadMore()
	assert.False(t, ok)
	_, ok = c.LoadMore()
	assert.False(t, ok)

	c.Resolve(req2, page(2, 20), 100, nil)
	req3, ok := c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 3, req3.Page)
}

func TestController_StaleSuccessDiscarded(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	slow, _ := c.Start()
	fast, ok := c.ApplyFilters(Patch{Keyword: Str("dragons")})
	require.True(t, ok)

	require.True(t, c.Resolve(fast, page(1, 5), 5, nil))
	assert.Len(t, c.State().Items, 5)

	// The superseded request resolves afterwards; nothing may change.
	assert.False(t, c.Resolve(slow, page(1, 20), 100, nil))
	st := c.State()
	assert.Len(t, st.Items, 5)
	assert.Equal(t, 5, st.Total)
	assert.False(t, st.LoadingInitial)
}

func TestController_StaleFailureDiscarded(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	slow, _ := c.Start()
	fast, _ := c.ApplyFilters(Patch{SortBy: Str("views")})

	require.True(t, c.Resolve(fast, page(1, 20), 40, nil))

	// A stale failure must not plant an error over good data.
	assert.False(t, c.Resolve(slow, nil, 0, errors.New("boom")))
	st := c.State()
	assert.Empty(t, st.Err)
	assert.Len(t, st.Items, 20)
}

func TestController_ReplaceFailureClearsItems(t *testing.T) {
	c := New[string](KindBrowse, Options{
		Initial:     FilterSet{PageSize: 20},
		ErrFallback: "Failed to load novels",
	})

	req, _ := c.Start()
	c.Resolve(req, page(1, 20), 40, nil)

	req2, _ := c.ApplyFilters(Patch{Status: Str("completed")})
	require.True(t, c.Resolve(req2, nil, 0, errors.New("boom")))

	st := c.State()
	assert.Equal(t, "Failed to load novels", st.Err)
	assert.Empty(t, st.Items)
	assert.False(t, st.HasMore)
}

func TestController_LoadMoreFailureKeepsItems(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	req, _ := c.Start()
	c.Resolve(req, page(1, 20), 100, nil)

	req2, _ := c.LoadMore()
	require.True(t, c.Resolve(req2, nil, 0, domain.ErrServerOffline))

	st := c.State()
	assert.Len(t, st.Items, 20, "loaded pages survive a failed load-more")
	assert.Equal(t, "Network error. Check your connection and try again.", st.Err)

	// The cursor rolled back, so the next load-more retries page 2.
	req3, ok := c.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, req3.Page)
}

func TestController_RetryReplacesFromPageOne(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	req, _ := c.Start()
	c.Resolve(req, nil, 0, errors.New("boom"))
	assert.NotEmpty(t, c.State().Err)

	req2, ok := c.Retry()
	require.True(t, ok)
	assert.Equal(t, 1, req2.Page)
	assert.True(t, req2.Replace)
	assert.Empty(t, c.State().Err, "issuing a retry clears the error")

	c.Resolve(req2, page(1, 20), 40, nil)
	assert.Len(t, c.State().Items, 20)
}

func TestController_UnknownCategoryShortCircuit(t *testing.T) {
	resolved := map[string]string{"fantasy": "cat-1"}
	c := New[string](KindBrowse, Options{
		Initial: FilterSet{PageSize: 20},
		ResolveCategory: func(slug string) (string, bool) {
			id, ok := resolved[slug]
			return id, ok
		},
	})

	req, ok := c.ApplyFilters(Patch{Category: Str("fantasy")})
	require.True(t, ok)
	assert.Equal(t, "cat-1", req.Filters.Category, "slug translated to server id")

	// An unknown slug issues nothing and lands in an empty resting state.
	_, ok = c.ApplyFilters(Patch{Category: Str("no-such-genre")})
	assert.False(t, ok)
	st := c.State()
	assert.Empty(t, st.Items)
	assert.Empty(t, st.Err)
	assert.False(t, st.LoadingInitial)

	// The short-circuit also supersedes the in-flight fantasy request.
	assert.False(t, c.Resolve(req, page(1, 20), 20, nil))
	assert.Empty(t, c.State().Items)
}

func TestController_FiltersPersistedOnChange(t *testing.T) {
	var saved []FilterSet
	c := New[string](KindBrowse, Options{
		Initial:          FilterSet{PageSize: 20},
		OnFiltersChanged: func(fs FilterSet) { saved = append(saved, fs) },
	})

	c.Start()
	assert.Empty(t, saved, "starting does not count as a filter change")

	c.ApplyFilters(Patch{SortBy: Str("views")})
	require.Len(t, saved, 1)
	assert.Equal(t, "views", saved[0].SortBy)

	c.ApplyFilters(Patch{Keyword: Str("sword")})
	require.Len(t, saved, 2)
	assert.Equal(t, "views", saved[1].SortBy, "patch merge keeps earlier fields")
	assert.Equal(t, "sword", saved[1].Keyword)
}

func TestController_ApplyFiltersResetsPaging(t *testing.T) {
	c := New[string](KindBrowse, Options{Initial: FilterSet{PageSize: 20}})

	req, _ := c.Start()
	c.Resolve(req, page(1, 20), 100, nil)
	req2, _ := c.LoadMore()
	c.Resolve(req2, page(2, 20), 100, nil)
	require.Len(t, c.State().Items, 40)

	req3, ok := c.ApplyFilters(Patch{Status: Str("ongoing")})
	require.True(t, ok)
	assert.Equal(t, 1, req3.Page)
	assert.True(t, req3.Replace)

	c.Resolve(req3, page(1, 20), 30, nil)
	assert.Len(t, c.State().Items, 20, "replace mode discards the old pages")
}
