package pager

// State is the externally observable result of a controller. Items is
// append-only across load-more calls and fully replaced on filter changes and
// retry. LoadingInitial and LoadingMore are never both true.
type State[T any] struct {
	Items          []T
	Total          int
	HasMore        bool
	LoadingInitial bool
	LoadingMore    bool
	Err            string // "" means no error
}

// Request describes one outstanding fetch. Seq is strictly increasing per
// controller; only the most recently issued request may mutate state when it
// resolves. Page is 1-based.
type Request struct {
	Seq      uint64
	Page     int
	PageSize int
	Filters  FilterSet
	Replace  bool
}

// Options configures a Controller.
type Options struct {
	// Initial is the starting filter set, typically restored from the
	// preferences store. It is normalized before use.
	Initial FilterSet

	// ResolveCategory maps a category slug to a server ID. Returning ok=false
	// short-circuits the fetch: no request is issued and the controller lands
	// in an empty, non-loading, non-error state. Nil disables resolution and
	// passes the slug through as the ID.
	ResolveCategory func(slug string) (id string, ok bool)

	// OnFiltersChanged is invoked after every successful filter mutation,
	// typically to persist the set. May be nil.
	OnFiltersChanged func(FilterSet)

	// ErrFallback is the resource-specific message used when a failure
	// carries no server-supplied message, e.g. "Failed to load novels".
	ErrFallback string
}

// Controller is the paginated list state machine. It is not safe for
// concurrent use; all calls must come from one goroutine (the TUI update
// loop). Fetch results arriving from other goroutines are funneled back in as
// messages and applied via Resolve.
type Controller[T any] struct {
	filters  FilterSet
	cursor   int // 1-based page of the most recent issue
	seq      uint64
	st       State[T]
	resolve  func(string) (string, bool)
	onChange func(FilterSet)
	fallback string
}

// New creates a controller for the given resource kind.
func New[T any](kind Kind, opts Options) *Controller[T] {
	fs := opts.Initial
	fs.Kind = kind
	return &Controller[T]{
		filters:  Normalize(fs),
		cursor:   1,
		resolve:  opts.ResolveCategory,
		onChange: opts.OnFiltersChanged,
		fallback: opts.ErrFallback,
	}
}

// State returns the current list state.
func (c *Controller[T]) State() State[T] { return c.st }

// Filters returns the current filter set.
func (c *Controller[T]) Filters() FilterSet { return c.filters }

// Loading reports whether any fetch is outstanding.
func (c *Controller[T]) Loading() bool {
	return c.st.LoadingInitial || c.st.LoadingMore
}

// Start issues the initial replace-mode fetch at page 1. ok=false means no
// request should be performed (unresolvable category short-circuit).
func (c *Controller[T]) Start() (Request, bool) {
	c.cursor = 1
	return c.issue(true)
}

// ApplyFilters merges the patch into the filter set, normalizes it for the
// controller's kind, persists it via the OnFiltersChanged hook, resets the
// cursor, and issues a replace-mode fetch.
func (c *Controller[T]) ApplyFilters(p Patch) (Request, bool) {
	merged := Normalize(c.filters.Merge(p))
	c.filters = merged
	if c.onChange != nil {
		c.onChange(merged)
	}
	c.cursor = 1
	return c.issue(true)
}

// LoadMore issues an append-mode fetch for the next page. It is a no-op while
// any fetch is outstanding or when the list is exhausted, so repeated calls
// from a scroll handler issue at most one request.
func (c *Controller[T]) LoadMore() (Request, bool) {
	if c.st.LoadingInitial || c.st.LoadingMore || !c.st.HasMore {
		return Request{}, false
	}
	c.cursor++
	return c.issue(false)
}

// Retry re-issues the current filter set at page 1 in replace mode.
func (c *Controller[T]) Retry() (Request, bool) {
	c.cursor = 1
	return c.issue(true)
}

// issue allocates the next sequence number, flips the loading flags, and
// builds the request descriptor.
func (c *Controller[T]) issue(replace bool) (Request, bool) {
	fs := c.filters
	if fs.Category != "" && c.resolve != nil {
		id, ok := c.resolve(fs.Category)
		if !ok {
			// Unknown slug: land in an empty resting state without touching
			// the network. Superseding any in-flight request keeps a late
			// resolution from repopulating the list.
			c.seq++
			c.st = State[T]{}
			return Request{}, false
		}
		fs.Category = id
	}

	c.seq++
	c.st.Err = ""
	if replace {
		c.st.LoadingInitial = true
		c.st.LoadingMore = false
	} else {
		c.st.LoadingMore = true
	}

	return Request{
		Seq:      c.seq,
		Page:     c.cursor,
		PageSize: fs.PageSize,
		Filters:  fs,
		Replace:  replace,
	}, true
}

// Resolve applies the outcome of a request. If the request has been
// superseded the resolution is discarded entirely — no state change, not even
// clearing a loading flag, since the flags belong to the newer request.
// Returns whether the resolution was applied.
func (c *Controller[T]) Resolve(req Request, items []T, total int, err error) bool {
	if req.Seq != c.seq {
		return false
	}

	if req.Replace {
		c.st.LoadingInitial = false
	} else {
		c.st.LoadingMore = false
	}

	if err != nil {
		c.st.Err = Humanize(err, c.fallback)
		if req.Replace {
			c.st.Items = nil
			c.st.Total = 0
			c.st.HasMore = false
		} else if c.cursor > 1 {
			// Roll the cursor back so the next LoadMore retries this page
			// instead of skipping it.
			c.cursor--
		}
		return true
	}

	c.st.Err = ""
	if req.Replace {
		c.st.Items = append([]T(nil), items...)
	} else {
		c.st.Items = append(c.st.Items, items...)
	}
	c.st.Total = total
	// A short batch means the server ran out of rows.
	c.st.HasMore = len(items) == req.PageSize
	return true
}
