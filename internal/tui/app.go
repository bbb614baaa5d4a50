// Package tui implements the terminal interface. A single root model routes
// messages to the active view; every remote call runs as a command and comes
// back as a typed message, so all state changes happen on the update loop.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seralin/inkwell/internal/config"
	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/state"
	"github.com/seralin/inkwell/internal/tui/styles"
)

const statusLinger = 3 * time.Second

type view int

const (
	viewBrowse view = iota
	viewRankings
	viewShelf
	viewProfile
	viewDetail
	viewReader
)

// Services bundles everything the TUI needs.
type Services struct {
	Catalog  *service.CatalogService
	Rankings *service.RankingService
	Shelf    *service.ShelfService
	Reader   *service.ReaderService
	Social   *service.SocialService
	Session  *service.SessionService
}

// Model is the root bubbletea model.
type Model struct {
	view       view
	returnView view // list view to go back to when leaving detail

	browse   browseModel
	rankings rankingsModel
	shelf    shelfModel
	profile  profileModel
	detail   *detailModel
	reader   *readerModel

	started [4]bool // lazy-start flag per top-level view

	svcs  Services
	cfg   *config.Config
	store *state.Store

	status    string
	statusErr bool
	spin      spinner.Model

	width  int
	height int
}

// NewModel builds the root model.
func NewModel(svcs Services, cfg *config.Config, store *state.Store) Model {
	pageSize := cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	m := Model{
		svcs:     svcs,
		cfg:      cfg,
		store:    store,
		browse:   newBrowseModel(svcs.Catalog, store, pageSize),
		rankings: newRankingsModel(svcs.Rankings, svcs.Catalog, store, pageSize),
		shelf:    newShelfModel(svcs.Shelf, pageSize),
		profile:  newProfileModel(svcs.Session),
		spin: spinner.New(spinner.WithSpinner(spinner.Spinner{
			Frames: styles.SpinnerFrames,
			FPS:    time.Second / 10,
		})),
	}

	switch cfg.UI.DefaultView {
	case "rankings":
		m.view = viewRankings
	case "library":
		m.view = viewShelf
	default:
		m.view = viewBrowse
	}
	m.returnView = m.view
	return m
}

// initMsg kicks off the first view's fetch from inside the update loop, where
// model changes stick.
type initMsg struct{}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCategoriesCmd(m.svcs.Catalog),
		m.spin.Tick,
		func() tea.Msg { return initMsg{} },
	)
}

func (m Model) startView(v view) (Model, tea.Cmd) {
	switch v {
	case viewBrowse:
		if !m.started[viewBrowse] {
			m.started[viewBrowse] = true
			var cmd tea.Cmd
			m.browse, cmd = m.browse.start()
			return m, cmd
		}
	case viewRankings:
		var cmd tea.Cmd
		m.rankings, cmd = m.rankings.start()
		m.started[viewRankings] = true
		return m, cmd
	case viewShelf:
		var cmd tea.Cmd
		m.shelf, cmd = m.shelf.start()
		m.started[viewShelf] = true
		return m, cmd
	case viewProfile:
		if !m.started[viewProfile] {
			m.started[viewProfile] = true
			var cmd tea.Cmd
			m.profile, cmd = m.profile.start()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		body := msg.Height - 2 // status bar
		m.browse = m.browse.setSize(msg.Width, body)
		m.rankings = m.rankings.setSize(msg.Width, body)
		m.shelf = m.shelf.setSize(msg.Width, body)
		m.profile = m.profile.setSize(msg.Width, body)
		if m.detail != nil {
			*m.detail = m.detail.setSize(msg.Width, body)
		}
		if m.reader != nil {
			*m.reader = m.reader.setSize(msg.Width, body)
		}
		return m, nil

	case StatusMsg:
		m.status = msg.Message
		m.statusErr = msg.IsError
		return m, clearStatusAfter(statusLinger)

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case initMsg:
		return m.startView(m.view)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case openChapterMsg:
		return m.openReader(msg.NovelID, msg.ChapterID)

	case tea.KeyMsg:
		if handled, mm, cmd := m.handleGlobalKey(msg); handled {
			return mm, cmd
		}
		return m.routeKey(msg)
	}

	return m.routeMsg(msg)
}

// handleGlobalKey processes navigation keys that work everywhere. Keys are
// not global while a text input is focused; the focused view sees them first.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.inputFocused() {
		if msg.String() == "ctrl+c" {
			return true, m, m.quit()
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return true, m, m.quit()
	case "esc":
		mm, cmd := m.goBack()
		return true, mm, cmd
	case "1":
		mm, cmd := m.switchTo(viewBrowse)
		return true, mm, cmd
	case "2":
		mm, cmd := m.switchTo(viewRankings)
		return true, mm, cmd
	case "3":
		mm, cmd := m.switchTo(viewShelf)
		return true, mm, cmd
	case "p":
		mm, cmd := m.switchTo(viewProfile)
		return true, mm, cmd
	case "enter":
		if mm, cmd, ok := m.openSelected(); ok {
			return true, mm, cmd
		}
	}
	return false, m, nil
}

// inputFocused reports whether the active view has a focused text input.
func (m Model) inputFocused() bool {
	switch m.view {
	case viewBrowse:
		return m.browse.searching
	case viewShelf:
		return m.shelf.filtering
	case viewProfile:
		return m.profile.editing != editNone
	case viewDetail:
		return m.detail != nil && (m.detail.composing || m.detail.tocFiltering)
	case viewReader:
		return m.reader != nil && m.reader.composing
	}
	return false
}

func (m Model) quit() tea.Cmd {
	if m.reader != nil {
		m.reader.flush()
	}
	return tea.Quit
}

func (m Model) switchTo(v view) (Model, tea.Cmd) {
	if m.view == viewReader && m.reader != nil {
		m.reader.flush()
		m.reader = nil
	}
	m.view = v
	if v != viewDetail && v != viewReader {
		m.returnView = v
	}
	return m.startView(v)
}

func (m Model) goBack() (Model, tea.Cmd) {
	switch m.view {
	case viewReader:
		if m.reader != nil {
			m.reader.flush()
			m.reader = nil
		}
		if m.detail != nil {
			m.view = viewDetail
			return m, nil
		}
		m.view = m.returnView
		return m, nil
	case viewDetail:
		m.detail = nil
		m.view = m.returnView
		// Refresh whatever list is underneath; library membership or
		// progress may have changed while in detail.
		if m.view == viewShelf {
			var cmd tea.Cmd
			m.shelf, cmd = m.shelf.start()
			return m, cmd
		}
	}
	return m, nil
}

// openSelected opens the detail view for the selected row of the active list.
func (m Model) openSelected() (Model, tea.Cmd, bool) {
	var novelID string
	switch m.view {
	case viewBrowse:
		novel, ok := m.browse.selectedNovel()
		if !ok {
			return m, nil, false
		}
		novelID = novel.ID
	case viewRankings:
		id, ok := m.rankings.selectedNovelID()
		if !ok {
			return m, nil, false
		}
		novelID = id
	case viewShelf:
		id, ok := m.shelf.selectedNovelID()
		if !ok {
			return m, nil, false
		}
		novelID = id
	default:
		return m, nil, false
	}

	pageSize := m.cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	d := newDetailModel(novelID, m.svcs.Catalog, m.svcs.Reader, m.svcs.Shelf, m.svcs.Social, pageSize)
	if m.view == viewShelf && m.shelf.tab == tabLibrary {
		d.inLibrary = true
	}
	d = d.setSize(m.width, m.height-2)

	m.returnView = m.view
	m.view = viewDetail

	var cmd tea.Cmd
	d, cmd = d.start()
	m.detail = &d
	return m, cmd, true
}

func (m Model) openReader(novelID, chapterID string) (Model, tea.Cmd) {
	if m.reader != nil {
		m.reader.flush()
	}
	pageSize := m.cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	r := newReaderModel(novelID, chapterID, m.svcs.Reader, m.svcs.Social, m.cfg.Reader, pageSize)
	r = r.setSize(m.width, m.height-2)

	m.view = viewReader
	var cmd tea.Cmd
	r, cmd = r.start()
	m.reader = &r
	return m, cmd
}

// routeKey delivers a key press to the active view only.
func (m Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case viewRankings:
		m.rankings, cmd = m.rankings.Update(msg)
	case viewShelf:
		m.shelf, cmd = m.shelf.Update(msg)
	case viewProfile:
		m.profile, cmd = m.profile.Update(msg)
	case viewDetail:
		if m.detail != nil {
			*m.detail, cmd = m.detail.Update(msg)
		}
	case viewReader:
		if m.reader != nil {
			*m.reader, cmd = m.reader.Update(msg)
		}
	}
	return m, cmd
}

// routeMsg delivers a non-key message to the view that owns its type. Paged
// resolutions are typed per view, so a stale browse page can never reach the
// rankings controller.
func (m Model) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case PageMsg[domain.Novel], CategoriesMsg:
		m.browse, cmd = m.browse.Update(msg)
		cmds = append(cmds, cmd)
	case PageMsg[domain.RankEntry]:
		m.rankings, cmd = m.rankings.Update(msg)
		cmds = append(cmds, cmd)
	case PageMsg[domain.LibraryEntry], PageMsg[domain.HistoryEntry]:
		m.shelf, cmd = m.shelf.Update(msg)
		cmds = append(cmds, cmd)
	case ShelfActionMsg:
		m.shelf, cmd = m.shelf.Update(msg)
		cmds = append(cmds, cmd)
		if m.detail != nil {
			*m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
	case PageMsg[domain.Review], NovelMsg, TOCMsg, LikeToggledMsg, ReviewPostedMsg, ReviewDeletedMsg:
		if m.detail != nil {
			*m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
	case ChapterMsg, PageMsg[domain.Comment], CommentPostedMsg:
		if m.reader != nil {
			*m.reader, cmd = m.reader.Update(msg)
			cmds = append(cmds, cmd)
		}
	case ProfileMsg, SignedOutMsg:
		m.profile, cmd = m.profile.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var body string
	switch m.view {
	case viewBrowse:
		body = m.browse.View()
	case viewRankings:
		body = m.rankings.View()
	case viewShelf:
		body = m.shelf.View()
	case viewProfile:
		body = m.profile.View()
	case viewDetail:
		if m.detail != nil {
			body = m.detail.View()
		}
	case viewReader:
		if m.reader != nil {
			body = m.reader.View()
		}
	}
	return body + "\n" + m.statusBar()
}

// anyLoading reports whether the active view has a fetch outstanding.
func (m Model) anyLoading() bool {
	switch m.view {
	case viewBrowse:
		return m.browse.ctrl.Loading()
	case viewRankings:
		return m.rankings.active().Loading()
	case viewShelf:
		if m.shelf.tab == tabLibrary {
			return m.shelf.library.Loading()
		}
		return m.shelf.history.Loading()
	case viewProfile:
		return m.profile.loading
	case viewDetail:
		return m.detail != nil && (m.detail.tocLoading || m.detail.reviews.Loading())
	case viewReader:
		return m.reader != nil && m.reader.loading
	}
	return false
}

func (m Model) statusBar() string {
	left := "1 browse · 2 rankings · 3 shelf · p profile · q quit"
	if m.view == viewDetail || m.view == viewReader {
		left = "esc back · " + left
	}
	if m.anyLoading() {
		left = m.spin.View() + " " + left
	}

	if m.status != "" {
		style := styles.StatusBar
		if m.statusErr {
			style = style.Foreground(styles.ColorError)
		}
		left = m.status
		return style.Width(max(m.width, lipgloss.Width(left))).Render(left)
	}

	user := m.svcs.Session.Username()
	if user == "" {
		user = "guest"
	}
	bar := left + "  │  " + user
	return styles.StatusBar.Width(max(m.width, lipgloss.Width(bar))).Render(truncateLine(bar, m.width))
}
