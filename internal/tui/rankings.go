package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/state"
	"github.com/seralin/inkwell/internal/tui/components"
	"github.com/seralin/inkwell/internal/tui/styles"
)

// prefsRankings is the preference blob key for the rankings view.
const prefsRankings = "rankings"

var rankTabs = []pager.Kind{pager.KindRankNovels, pager.KindRankReaders, pager.KindRankWriters}

var rankTabLabels = map[pager.Kind]string{
	pager.KindRankNovels:  "Novels",
	pager.KindRankReaders: "Readers",
	pager.KindRankWriters: "Writers",
}

// rankingsModel is the tabbed leaderboard view. Each tab owns its own
// controller (and therefore its own request sequence); the time-range filter
// is shared through the persisted blob, and switching to a tab where the
// saved sort key is invalid relies on Normalize to coerce it.
type rankingsModel struct {
	tab     int
	ctrls   map[pager.Kind]*pager.Controller[domain.RankEntry]
	started map[pager.Kind]bool
	list    components.PagedList
	svc     *service.RankingService
	catalog *service.CatalogService
	store   *state.Store

	width  int
	height int
}

func newRankingsModel(svc *service.RankingService, catalog *service.CatalogService, store *state.Store, pageSize int) rankingsModel {
	saved := pager.FilterSet{PageSize: pageSize}
	tab := 0
	if prefs := store.Prefs(prefsRankings); prefs != nil {
		if fs, ok := state.DecodePref[pager.FilterSet](prefs, "filters"); ok {
			saved = fs
			if saved.PageSize == 0 {
				saved.PageSize = pageSize
			}
		}
		if t, ok := state.DecodePref[int](prefs, "tab"); ok && t >= 0 && t < len(rankTabs) {
			tab = t
		}
	}

	ctrls := make(map[pager.Kind]*pager.Controller[domain.RankEntry], len(rankTabs))
	for _, kind := range rankTabs {
		initial := saved
		ctrls[kind] = pager.New[domain.RankEntry](kind, pager.Options{
			Initial:         initial,
			ResolveCategory: catalog.ResolveCategory,
			OnFiltersChanged: func(fs pager.FilterSet) {
				store.SavePrefs(prefsRankings, map[string]any{"filters": fs})
			},
			ErrFallback: "Failed to load rankings",
		})
	}

	return rankingsModel{
		tab:     tab,
		ctrls:   ctrls,
		started: make(map[pager.Kind]bool),
		list:    components.NewPagedList(),
		svc:     svc,
		catalog: catalog,
		store:   store,
	}
}

func (m rankingsModel) activeKind() pager.Kind { return rankTabs[m.tab] }

func (m rankingsModel) active() *pager.Controller[domain.RankEntry] {
	return m.ctrls[m.activeKind()]
}

// start fetches the active tab's board if it has not been loaded yet.
func (m rankingsModel) start() (rankingsModel, tea.Cmd) {
	kind := m.activeKind()
	if m.started[kind] {
		m.syncRows()
		return m, nil
	}
	m.started[kind] = true
	req, ok := m.active().Start()
	return m, maybeFetch(m.svc.FetchRankings, req, ok)
}

func (m rankingsModel) setSize(width, height int) rankingsModel {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	return m
}

func (m *rankingsModel) syncRows() {
	st := m.active().State()
	rows := make([]components.Row, len(st.Items))
	for i, e := range st.Items {
		title := fmt.Sprintf("#%d  %s", e.Position, e.DisplayName())
		var desc string
		switch e.Kind {
		case domain.RankNovels:
			desc = fmt.Sprintf("%s · %d views · %.1f★", e.Author, e.Views, e.Rating)
		case domain.RankReaders:
			desc = fmt.Sprintf("%dh reading time", e.Metric/3600)
		case domain.RankWriters:
			desc = fmt.Sprintf("%d words published", e.Metric)
		}
		rows[i] = components.Row{ID: e.NovelID + e.UserID, Title: title, Desc: desc}
	}
	m.list.SetRows(rows)
}

func (m rankingsModel) Update(msg tea.Msg) (rankingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case PageMsg[domain.RankEntry]:
		// The message's board is identified by the request's filter kind;
		// resolve against that controller even if the user moved tabs.
		ctrl, ok := m.ctrls[msg.Req.Filters.Kind]
		if ok && ctrl.Resolve(msg.Req, msg.Items, msg.Total, msg.Err) && msg.Req.Filters.Kind == m.activeKind() {
			m.syncRows()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m rankingsModel) handleKey(msg tea.KeyMsg) (rankingsModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "l":
		return m.switchTab((m.tab + 1) % len(rankTabs))
	case "shift+tab", "h":
		return m.switchTab((m.tab + len(rankTabs) - 1) % len(rankTabs))
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
		if m.list.NearEnd() {
			req, ok := m.active().LoadMore()
			return m, maybeFetch(m.svc.FetchRankings, req, ok)
		}
	case "g":
		m.list.GotoTop()
	case "G":
		m.list.GotoBottom()
	case "w":
		return m.applyRange("weekly")
	case "m":
		return m.applyRange("monthly")
	case "a":
		return m.applyRange("all")
	case "r":
		if m.active().State().Err != "" {
			req, ok := m.active().Retry()
			m.syncRows()
			return m, maybeFetch(m.svc.FetchRankings, req, ok)
		}
	}
	return m, nil
}

func (m rankingsModel) switchTab(tab int) (rankingsModel, tea.Cmd) {
	m.tab = tab
	m.store.SavePrefs(prefsRankings, map[string]any{"tab": tab})
	m.list.GotoTop()
	return m.start()
}

func (m rankingsModel) applyRange(timeRange string) (rankingsModel, tea.Cmd) {
	req, ok := m.active().ApplyFilters(pager.Patch{Range: pager.Str(timeRange)})
	m.syncRows()
	return m, maybeFetch(m.svc.FetchRankings, req, ok)
}

// selectedNovelID returns the novel id under the cursor on the novel board.
func (m rankingsModel) selectedNovelID() (string, bool) {
	if m.activeKind() != pager.KindRankNovels {
		return "", false
	}
	pos := m.list.Cursor()
	items := m.active().State().Items
	if pos < 0 || pos >= len(items) {
		return "", false
	}
	return items[pos].NovelID, true
}

func (m rankingsModel) View() string {
	var b strings.Builder

	var tabs []string
	for i, kind := range rankTabs {
		label := rankTabLabels[kind]
		if i == m.tab {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	b.WriteString(styles.Title.Render("Rankings"))
	b.WriteString("  ")
	b.WriteString(strings.Join(tabs, " │ "))
	b.WriteString("  ")
	b.WriteString(styles.FilterPill.Render("[w]eek [m]onth [a]ll:" + m.active().Filters().Range))
	b.WriteString("\n")

	st := m.active().State()
	switch {
	case st.LoadingInitial:
		b.WriteString(styles.Muted.Render("Loading rankings…"))
	case st.Err != "" && len(st.Items) == 0:
		b.WriteString(styles.Error.Render(st.Err))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press r to retry"))
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		var parts []string
		parts = append(parts, fmt.Sprintf("%d of %d", len(st.Items), st.Total))
		if st.LoadingMore {
			parts = append(parts, "loading more…")
		}
		if st.Err != "" {
			parts = append(parts, styles.Error.Render(st.Err))
		}
		b.WriteString(styles.Muted.Render(strings.Join(parts, " · ")))
	}
	return b.String()
}
