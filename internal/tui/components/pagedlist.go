// Package components holds the reusable view widgets of the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/seralin/inkwell/internal/tui/styles"
)

// loadThreshold is how many rows from the bottom of the list the cursor may
// get before the list asks for the next page. It plays the role a
// near-the-end sentinel plays in a scrolling web page.
const loadThreshold = 5

// Row is one renderable list entry.
type Row struct {
	ID    string
	Title string
	Desc  string
}

// PagedList is a scrollable, cursor-driven list over remotely paginated rows
// with an optional in-list fuzzy filter. It renders rows and tracks the
// cursor; fetching is its owner's job, signalled through NearEnd.
type PagedList struct {
	rows   []Row
	cursor int
	offset int
	width  int
	height int

	filterQuery string
	filtered    []int // indexes into rows, set while filtering
}

// NewPagedList creates an empty list.
func NewPagedList() PagedList {
	return PagedList{}
}

// SetSize sets the render area.
func (l *PagedList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampScroll()
}

// SetRows replaces the backing rows, keeping the cursor in bounds and
// reapplying any active filter.
func (l *PagedList) SetRows(rows []Row) {
	l.rows = rows
	if l.filterQuery != "" {
		l.applyFilter()
	}
	l.clampCursor()
}

// Len returns the number of currently visible rows.
func (l *PagedList) Len() int {
	if l.filterQuery != "" {
		return len(l.filtered)
	}
	return len(l.rows)
}

// Cursor returns the cursor position among visible rows.
func (l *PagedList) Cursor() int { return l.cursor }

// Selected returns the row under the cursor.
func (l *PagedList) Selected() (Row, bool) {
	idx, ok := l.visibleIndex(l.cursor)
	if !ok {
		return Row{}, false
	}
	return l.rows[idx], true
}

// MoveUp moves the cursor up one row.
func (l *PagedList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clampScroll()
}

// MoveDown moves the cursor down one row.
func (l *PagedList) MoveDown() {
	if l.cursor < l.Len()-1 {
		l.cursor++
	}
	l.clampScroll()
}

// PageUp moves the cursor up one screenful.
func (l *PagedList) PageUp() {
	l.cursor -= l.pageStep()
	l.clampCursor()
}

// PageDown moves the cursor down one screenful.
func (l *PagedList) PageDown() {
	l.cursor += l.pageStep()
	l.clampCursor()
}

// GotoTop moves the cursor to the first row.
func (l *PagedList) GotoTop() {
	l.cursor = 0
	l.offset = 0
}

// GotoBottom moves the cursor to the last row.
func (l *PagedList) GotoBottom() {
	l.cursor = l.Len() - 1
	l.clampCursor()
}

// NearEnd reports whether the cursor is close enough to the bottom of the
// unfiltered list that the next page should be requested. While a filter is
// active the answer is always false; load-more under a narrowed view would
// surprise the user.
func (l *PagedList) NearEnd() bool {
	if l.filterQuery != "" || len(l.rows) == 0 {
		return false
	}
	return l.cursor >= len(l.rows)-loadThreshold
}

// SetFilter narrows the list with a fuzzy query. Empty clears the filter.
func (l *PagedList) SetFilter(query string) {
	l.filterQuery = strings.TrimSpace(query)
	if l.filterQuery == "" {
		l.filtered = nil
	} else {
		l.applyFilter()
	}
	l.cursor = 0
	l.offset = 0
}

// Filtering reports whether a filter is active.
func (l *PagedList) Filtering() bool { return l.filterQuery != "" }

func (l *PagedList) applyFilter() {
	titles := make([]string, len(l.rows))
	for i, r := range l.rows {
		titles[i] = r.Title
	}
	matches := fuzzy.Find(l.filterQuery, titles)
	l.filtered = make([]int, len(matches))
	for i, m := range matches {
		l.filtered[i] = m.Index
	}
}

func (l *PagedList) visibleIndex(pos int) (int, bool) {
	if pos < 0 || pos >= l.Len() {
		return 0, false
	}
	if l.filterQuery != "" {
		return l.filtered[pos], true
	}
	return pos, true
}

func (l *PagedList) pageStep() int {
	step := l.visibleRows() - 1
	if step < 1 {
		step = 1
	}
	return step
}

// visibleRows is how many entries fit in the render area (two lines each).
func (l *PagedList) visibleRows() int {
	rows := l.height / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (l *PagedList) clampCursor() {
	if l.cursor > l.Len()-1 {
		l.cursor = l.Len() - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
}

func (l *PagedList) clampScroll() {
	visible := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the list.
func (l *PagedList) View() string {
	if l.Len() == 0 {
		if l.filterQuery != "" {
			return styles.Muted.Render(fmt.Sprintf("No matches for %q", l.filterQuery))
		}
		return styles.Muted.Render("Nothing here yet")
	}

	var b strings.Builder
	visible := l.visibleRows()
	end := l.offset + visible
	if end > l.Len() {
		end = l.Len()
	}

	for pos := l.offset; pos < end; pos++ {
		idx, _ := l.visibleIndex(pos)
		row := l.rows[idx]

		title := truncate(row.Title, l.width-2)
		desc := truncate(row.Desc, l.width-4)

		if pos == l.cursor {
			b.WriteString(styles.Selected.Render("> " + title))
		} else {
			b.WriteString("  " + styles.Normal.Render(title))
		}
		b.WriteString("\n")
		b.WriteString("    " + styles.Muted.Render(desc))
		if pos < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
