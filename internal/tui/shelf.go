package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/tui/components"
	"github.com/seralin/inkwell/internal/tui/styles"
)

// shelfTab selects between the library and history lists.
type shelfTab int

const (
	tabLibrary shelfTab = iota
	tabHistory
)

// shelfModel is the library/history view. Both tabs are plain paginated
// lists; the filter input narrows the already-fetched rows locally instead of
// going back to the server.
type shelfModel struct {
	tab     shelfTab
	library *pager.Controller[domain.LibraryEntry]
	history *pager.Controller[domain.HistoryEntry]
	started [2]bool
	list    components.PagedList
	svc     *service.ShelfService

	filter    textinput.Model
	filtering bool

	width  int
	height int
}

func newShelfModel(svc *service.ShelfService, pageSize int) shelfModel {
	library := pager.New[domain.LibraryEntry](pager.KindLibrary, pager.Options{
		Initial:     pager.FilterSet{PageSize: pageSize},
		ErrFallback: "Failed to load your library",
	})
	history := pager.New[domain.HistoryEntry](pager.KindHistory, pager.Options{
		Initial:     pager.FilterSet{PageSize: pageSize},
		ErrFallback: "Failed to load reading history",
	})

	filter := textinput.New()
	filter.Placeholder = "filter by title"
	filter.CharLimit = 80

	return shelfModel{
		library: library,
		history: history,
		list:    components.NewPagedList(),
		svc:     svc,
		filter:  filter,
	}
}

func (m shelfModel) start() (shelfModel, tea.Cmd) {
	if m.started[m.tab] {
		m.syncRows()
		return m, nil
	}
	m.started[m.tab] = true
	if m.tab == tabLibrary {
		req, ok := m.library.Start()
		return m, maybeFetch(m.svc.FetchLibrary, req, ok)
	}
	req, ok := m.history.Start()
	return m, maybeFetch(m.svc.FetchHistory, req, ok)
}

// refreshLibrary forces a replace fetch, used after add/remove actions.
func (m shelfModel) refreshLibrary() (shelfModel, tea.Cmd) {
	m.started[tabLibrary] = true
	req, ok := m.library.Retry()
	return m, maybeFetch(m.svc.FetchLibrary, req, ok)
}

func (m shelfModel) setSize(width, height int) shelfModel {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	return m
}

func (m *shelfModel) syncRows() {
	var rows []components.Row
	if m.tab == tabLibrary {
		st := m.library.State()
		rows = make([]components.Row, len(st.Items))
		for i, e := range st.Items {
			desc := e.Novel.Author
			if e.LastChapter > 0 {
				desc += fmt.Sprintf(" · last read ch.%d/%d", e.LastChapter, e.Novel.Chapters)
			} else {
				desc += fmt.Sprintf(" · %d chapters, unread", e.Novel.Chapters)
			}
			rows[i] = components.Row{ID: e.Novel.ID, Title: e.Novel.Title, Desc: desc}
		}
	} else {
		st := m.history.State()
		rows = make([]components.Row, len(st.Items))
		for i, e := range st.Items {
			when := time.Unix(e.ReadAt, 0).Format("Jan 2 15:04")
			desc := fmt.Sprintf("ch.%d %s · %s", e.ChapterIndex, e.ChapterTitle, when)
			rows[i] = components.Row{ID: e.Novel.ID, Title: e.Novel.Title, Desc: desc}
		}
	}
	m.list.SetRows(rows)
}

func (m shelfModel) Update(msg tea.Msg) (shelfModel, tea.Cmd) {
	switch msg := msg.(type) {
	case PageMsg[domain.LibraryEntry]:
		if m.library.Resolve(msg.Req, msg.Items, msg.Total, msg.Err) && m.tab == tabLibrary {
			m.syncRows()
		}
		return m, nil

	case PageMsg[domain.HistoryEntry]:
		if m.history.Resolve(msg.Req, msg.Items, msg.Total, msg.Err) && m.tab == tabHistory {
			m.syncRows()
		}
		return m, nil

	case ShelfActionMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Library update failed"), true)
		}
		var cmd tea.Cmd
		m, cmd = m.refreshLibrary()
		verb := "added to"
		if !msg.Added {
			verb = "removed from"
		}
		return m, tea.Batch(cmd, statusCmd("Novel "+verb+" library", false))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m shelfModel) handleKey(msg tea.KeyMsg) (shelfModel, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			if msg.String() == "esc" {
				m.filter.SetValue("")
				m.list.SetFilter("")
				m.syncRows()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.list.SetFilter(m.filter.Value())
			return m, cmd
		}
	}

	switch msg.String() {
	case "tab", "l", "h":
		if m.tab == tabLibrary {
			m.tab = tabHistory
		} else {
			m.tab = tabLibrary
		}
		m.list.GotoTop()
		m.list.SetFilter("")
		m.filter.SetValue("")
		return m.start()
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
		if m.list.NearEnd() {
			return m.loadMore()
		}
	case "g":
		m.list.GotoTop()
	case "G":
		m.list.GotoBottom()
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "x":
		if m.tab == tabLibrary {
			if row, ok := m.list.Selected(); ok {
				return m, shelfActionCmd(m.svc, row.ID, false)
			}
		}
	case "r":
		if m.activeErr() != "" {
			m.started[m.tab] = false
			return m.start()
		}
	}
	return m, nil
}

func (m shelfModel) loadMore() (shelfModel, tea.Cmd) {
	if m.tab == tabLibrary {
		req, ok := m.library.LoadMore()
		return m, maybeFetch(m.svc.FetchLibrary, req, ok)
	}
	req, ok := m.history.LoadMore()
	return m, maybeFetch(m.svc.FetchHistory, req, ok)
}

func (m shelfModel) activeErr() string {
	if m.tab == tabLibrary {
		return m.library.State().Err
	}
	return m.history.State().Err
}

func (m shelfModel) activeCounts() (int, int, bool) {
	if m.tab == tabLibrary {
		st := m.library.State()
		return len(st.Items), st.Total, st.LoadingMore
	}
	st := m.history.State()
	return len(st.Items), st.Total, st.LoadingMore
}

// selectedNovelID returns the novel under the cursor.
func (m shelfModel) selectedNovelID() (string, bool) {
	row, ok := m.list.Selected()
	return row.ID, ok
}

func (m shelfModel) loadingInitial() bool {
	if m.tab == tabLibrary {
		return m.library.State().LoadingInitial
	}
	return m.history.State().LoadingInitial
}

func (m shelfModel) View() string {
	var b strings.Builder

	libLabel, histLabel := styles.TabInactive.Render("Library"), styles.TabInactive.Render("History")
	if m.tab == tabLibrary {
		libLabel = styles.TabActive.Render("Library")
	} else {
		histLabel = styles.TabActive.Render("History")
	}
	b.WriteString(styles.Title.Render("Shelf"))
	b.WriteString("  ")
	b.WriteString(libLabel + " │ " + histLabel)
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	loaded, total, loadingMore := m.activeCounts()
	switch {
	case m.loadingInitial():
		b.WriteString(styles.Muted.Render("Loading…"))
	case m.activeErr() != "" && loaded == 0:
		b.WriteString(styles.Error.Render(m.activeErr()))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press r to retry"))
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		var parts []string
		parts = append(parts, fmt.Sprintf("%d of %d", loaded, total))
		if loadingMore {
			parts = append(parts, "loading more…")
		}
		if err := m.activeErr(); err != "" {
			parts = append(parts, styles.Error.Render(err))
		}
		b.WriteString(styles.Muted.Render(strings.Join(parts, " · ")))
	}
	return b.String()
}
