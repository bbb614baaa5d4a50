package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/state"
	"github.com/seralin/inkwell/internal/tui/components"
	"github.com/seralin/inkwell/internal/tui/styles"
)

// prefsBrowse is the preference blob key for the browse view.
const prefsBrowse = "browse"

var browseStatuses = []string{"", "ongoing", "completed", "hiatus"}

// browseModel is the catalog browsing/search view.
type browseModel struct {
	ctrl  *pager.Controller[domain.Novel]
	list  components.PagedList
	svc   *service.CatalogService
	store *state.Store

	categories []domain.Category
	search     textinput.Model
	searching  bool

	width  int
	height int
}

func newBrowseModel(svc *service.CatalogService, store *state.Store, pageSize int) browseModel {
	initial := pager.FilterSet{PageSize: pageSize}
	if prefs := store.Prefs(prefsBrowse); prefs != nil {
		if saved, ok := state.DecodePref[pager.FilterSet](prefs, "filters"); ok {
			initial = saved
			if initial.PageSize == 0 {
				initial.PageSize = pageSize
			}
		}
	}

	ctrl := pager.New[domain.Novel](pager.KindBrowse, pager.Options{
		Initial:         initial,
		ResolveCategory: svc.ResolveCategory,
		OnFiltersChanged: func(fs pager.FilterSet) {
			store.SavePrefs(prefsBrowse, map[string]any{"filters": fs})
		},
		ErrFallback: "Failed to load novels",
	})

	search := textinput.New()
	search.Placeholder = "search novels"
	search.CharLimit = 120

	return browseModel{
		ctrl:   ctrl,
		list:   components.NewPagedList(),
		svc:    svc,
		store:  store,
		search: search,
	}
}

func (m browseModel) start() (browseModel, tea.Cmd) {
	req, ok := m.ctrl.Start()
	return m, maybeFetch(m.svc.FetchNovels, req, ok)
}

func (m browseModel) setSize(width, height int) browseModel {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	return m
}

func (m *browseModel) syncRows() {
	st := m.ctrl.State()
	rows := make([]components.Row, len(st.Items))
	for i, n := range st.Items {
		desc := n.Author
		if n.Category != "" {
			desc += " · " + n.Category
		}
		desc += " · " + n.StatusLabel()
		if wc := n.FormattedWordCount(); wc != "" {
			desc += " · " + wc
		}
		rows[i] = components.Row{ID: n.ID, Title: n.Title, Desc: desc}
	}
	m.list.SetRows(rows)
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case PageMsg[domain.Novel]:
		if m.ctrl.Resolve(msg.Req, msg.Items, msg.Total, msg.Err) {
			m.syncRows()
		}
		return m, nil

	case CategoriesMsg:
		if msg.Err == nil {
			m.categories = msg.Categories
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			req, ok := m.ctrl.ApplyFilters(pager.Patch{Keyword: pager.Str(m.search.Value())})
			m.syncRows()
			return m, maybeFetch(m.svc.FetchNovels, req, ok)
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
		if m.list.NearEnd() {
			req, ok := m.ctrl.LoadMore()
			return m, maybeFetch(m.svc.FetchNovels, req, ok)
		}
	case "pgup", "b":
		m.list.PageUp()
	case "pgdown", "f":
		m.list.PageDown()
		if m.list.NearEnd() {
			req, ok := m.ctrl.LoadMore()
			return m, maybeFetch(m.svc.FetchNovels, req, ok)
		}
	case "g":
		m.list.GotoTop()
	case "G":
		m.list.GotoBottom()
	case "/":
		m.searching = true
		m.search.SetValue(m.ctrl.Filters().Keyword)
		m.search.Focus()
		return m, textinput.Blink
	case "c":
		req, ok := m.ctrl.ApplyFilters(pager.Patch{Category: pager.Str(m.nextCategory())})
		m.syncRows()
		return m, maybeFetch(m.svc.FetchNovels, req, ok)
	case "s":
		req, ok := m.ctrl.ApplyFilters(pager.Patch{SortBy: pager.Str(m.nextSort())})
		m.syncRows()
		return m, maybeFetch(m.svc.FetchNovels, req, ok)
	case "t":
		req, ok := m.ctrl.ApplyFilters(pager.Patch{Status: pager.Str(m.nextStatus())})
		m.syncRows()
		return m, maybeFetch(m.svc.FetchNovels, req, ok)
	case "r":
		if m.ctrl.State().Err != "" {
			req, ok := m.ctrl.Retry()
			m.syncRows()
			return m, maybeFetch(m.svc.FetchNovels, req, ok)
		}
	}
	return m, nil
}

// nextCategory cycles all -> each category -> all.
func (m browseModel) nextCategory() string {
	current := m.ctrl.Filters().Category
	if len(m.categories) == 0 {
		return ""
	}
	if current == "" {
		return m.categories[0].Slug
	}
	for i, c := range m.categories {
		if c.Slug == current {
			if i+1 < len(m.categories) {
				return m.categories[i+1].Slug
			}
			return ""
		}
	}
	return ""
}

func (m browseModel) nextSort() string {
	sorts := []string{"updated", "views", "rating", "words"}
	current := m.ctrl.Filters().SortBy
	for i, s := range sorts {
		if s == current {
			return sorts[(i+1)%len(sorts)]
		}
	}
	return sorts[0]
}

func (m browseModel) nextStatus() string {
	current := m.ctrl.Filters().Status
	for i, s := range browseStatuses {
		if s == current {
			return browseStatuses[(i+1)%len(browseStatuses)]
		}
	}
	return ""
}

// selectedNovel returns the novel under the cursor.
func (m browseModel) selectedNovel() (domain.Novel, bool) {
	row, ok := m.list.Selected()
	if !ok {
		return domain.Novel{}, false
	}
	for _, n := range m.ctrl.State().Items {
		if n.ID == row.ID {
			return n, true
		}
	}
	return domain.Novel{}, false
}

func (m browseModel) filterLine() string {
	fs := m.ctrl.Filters()
	var pills []string

	cat := "all"
	if fs.Category != "" {
		cat = fs.Category
	}
	pills = append(pills, styles.FilterPill.Render("[c]ategory:"+cat))

	status := "any"
	if fs.Status != "" {
		status = fs.Status
	}
	pills = append(pills, styles.FilterPill.Render("[t]status:"+status))
	pills = append(pills, styles.FilterPill.Render("[s]ort:"+fs.SortBy))

	if fs.Keyword != "" {
		pills = append(pills, styles.FilterPillActive.Render(" “"+fs.Keyword+"” "))
	}
	return strings.Join(pills, "  ")
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Browse"))
	b.WriteString("  ")
	b.WriteString(m.filterLine())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	st := m.ctrl.State()
	switch {
	case st.LoadingInitial:
		b.WriteString(styles.Muted.Render("Loading novels…"))
	case st.Err != "" && len(st.Items) == 0:
		b.WriteString(styles.Error.Render(st.Err))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press r to retry"))
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.footerLine(st))
	}
	return b.String()
}

func (m browseModel) footerLine(st pager.State[domain.Novel]) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d of %d", len(st.Items), st.Total))
	if st.LoadingMore {
		parts = append(parts, "loading more…")
	}
	if st.Err != "" {
		parts = append(parts, styles.Error.Render(st.Err))
	}
	return styles.Muted.Render(strings.Join(parts, " · "))
}
