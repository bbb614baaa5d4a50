package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/search"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/tui/styles"
)

// tocPageSize is the page size for the table of contents. Chapters are small
// rows, so larger pages than the novel lists.
const tocPageSize = 50

// openChapterMsg asks the root model to open the reader on a chapter.
type openChapterMsg struct {
	NovelID   string
	ChapterID string
}

type detailTab int

const (
	detailTabAbout detailTab = iota
	detailTabChapters
	detailTabReviews
)

// detailModel is the novel detail view: synopsis, table of contents, and
// reviews. A fresh model is built each time a novel is opened.
type detailModel struct {
	novelID string
	novel   *domain.Novel
	loadErr string

	tab detailTab

	// Table of contents, accumulated page by page.
	refs       []domain.ChapterRef
	tocTotal   int
	tocLoading bool
	tocErr     string
	tocCursor  int
	tocOffset  int

	tocFilter    textinput.Model
	tocFiltering bool
	tocMatches   []search.Match

	// Reviews.
	reviews    *pager.Controller[domain.Review]
	revStarted bool
	revCursor  int
	fetchRev   func(context.Context, pager.Request) ([]domain.Review, int, error)

	composing bool
	compose   textinput.Model
	rating    int

	inLibrary bool

	catalog *service.CatalogService
	reader  *service.ReaderService
	shelf   *service.ShelfService
	social  *service.SocialService

	width  int
	height int
}

func newDetailModel(novelID string, catalog *service.CatalogService, reader *service.ReaderService, shelf *service.ShelfService, social *service.SocialService, pageSize int) detailModel {
	reviews := pager.New[domain.Review](pager.KindReviews, pager.Options{
		Initial:     pager.FilterSet{PageSize: pageSize},
		ErrFallback: "Failed to load reviews",
	})

	tocFilter := textinput.New()
	tocFilter.Placeholder = "filter chapters"
	tocFilter.CharLimit = 80

	compose := textinput.New()
	compose.Placeholder = "write a review"
	compose.CharLimit = 500

	return detailModel{
		novelID:   novelID,
		reviews:   reviews,
		fetchRev:  social.FetchReviews(novelID),
		tocFilter: tocFilter,
		compose:   compose,
		rating:    5,
		catalog:   catalog,
		reader:    reader,
		shelf:     shelf,
		social:    social,
	}
}

func (m detailModel) start() (detailModel, tea.Cmd) {
	m.tocLoading = true
	return m, tea.Batch(
		loadNovelCmd(m.catalog, m.novelID),
		loadTOCCmd(m.catalog, m.novelID, 1, tocPageSize),
	)
}

func (m detailModel) setSize(width, height int) detailModel {
	m.width = width
	m.height = height
	return m
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case NovelMsg:
		if msg.Err != nil {
			m.loadErr = pager.Humanize(msg.Err, "Failed to load novel")
		} else {
			m.novel = msg.Novel
			m.loadErr = ""
		}
		return m, nil

	case TOCMsg:
		if msg.NovelID != m.novelID {
			return m, nil
		}
		m.tocLoading = false
		if msg.Err != nil {
			m.tocErr = pager.Humanize(msg.Err, "Failed to load chapters")
			return m, nil
		}
		m.tocErr = ""
		m.refs = append(m.refs, msg.Refs...)
		m.tocTotal = msg.Total
		if m.tocFilter.Value() != "" {
			m.applyTOCFilter()
		}
		return m, nil

	case PageMsg[domain.Review]:
		if m.reviews.Resolve(msg.Req, msg.Items, msg.Total, msg.Err) {
			m.clampReviewCursor()
		}
		return m, nil

	case ShelfActionMsg:
		if msg.Err == nil && msg.NovelID == m.novelID {
			m.inLibrary = msg.Added
		}
		return m, nil

	case LikeToggledMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Failed to update like"), true)
		}
		m.patchLike(msg.ReviewID, msg.Liked)
		return m, nil

	case ReviewPostedMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Failed to post review"), true)
		}
		// Refetch page one so the new review shows with server-side ordering.
		req, ok := m.reviews.Retry()
		return m, tea.Batch(maybeFetch(m.fetchRev, req, ok), statusCmd("Review posted", false))

	case ReviewDeletedMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Failed to delete review"), true)
		}
		req, ok := m.reviews.Retry()
		return m, tea.Batch(maybeFetch(m.fetchRev, req, ok), statusCmd("Review deleted", false))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *detailModel) patchLike(reviewID string, liked bool) {
	items := m.reviews.State().Items
	for i := range items {
		if items[i].ID == reviewID {
			if liked && !items[i].LikedByMe {
				items[i].Likes++
			} else if !liked && items[i].LikedByMe {
				items[i].Likes--
			}
			items[i].LikedByMe = liked
			return
		}
	}
}

func (m *detailModel) clampReviewCursor() {
	n := len(m.reviews.State().Items)
	if m.revCursor > n-1 {
		m.revCursor = n - 1
	}
	if m.revCursor < 0 {
		m.revCursor = 0
	}
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if m.composing {
		return m.handleComposeKey(msg)
	}
	if m.tocFiltering {
		switch msg.String() {
		case "enter", "esc":
			m.tocFiltering = false
			m.tocFilter.Blur()
			if msg.String() == "esc" {
				m.tocFilter.SetValue("")
				m.tocMatches = nil
			}
			m.tocCursor = 0
			m.tocOffset = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.tocFilter, cmd = m.tocFilter.Update(msg)
			m.applyTOCFilter()
			return m, cmd
		}
	}

	switch msg.String() {
	case "tab", "l":
		return m.switchTab((m.tab + 1) % 3)
	case "shift+tab", "h":
		return m.switchTab((m.tab + 2) % 3)
	case "a":
		if !m.inLibrary {
			return m, shelfActionCmd(m.shelf, m.novelID, true)
		}
	case "x":
		if m.inLibrary {
			return m, shelfActionCmd(m.shelf, m.novelID, false)
		}
	case "c":
		if rec, ok := m.reader.LastRead(m.novelID); ok {
			return m, func() tea.Msg {
				return openChapterMsg{NovelID: m.novelID, ChapterID: rec.ChapterID}
			}
		}
		// Nothing saved yet: start from the first chapter.
		if len(m.refs) > 0 {
			first := m.refs[0]
			return m, func() tea.Msg {
				return openChapterMsg{NovelID: m.novelID, ChapterID: first.ID}
			}
		}
	}

	switch m.tab {
	case detailTabChapters:
		return m.handleTOCKey(msg)
	case detailTabReviews:
		return m.handleReviewKey(msg)
	}
	return m, nil
}

func (m detailModel) switchTab(tab detailTab) (detailModel, tea.Cmd) {
	m.tab = tab
	if tab == detailTabReviews && !m.revStarted {
		m.revStarted = true
		req, ok := m.reviews.Start()
		return m, maybeFetch(m.fetchRev, req, ok)
	}
	return m, nil
}

func (m detailModel) handleTOCKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.tocCursor > 0 {
			m.tocCursor--
		}
	case "down", "j":
		if m.tocCursor < m.tocLen()-1 {
			m.tocCursor++
		}
		if !m.tocFilteringActive() && !m.tocLoading && len(m.refs) < m.tocTotal && m.tocCursor >= len(m.refs)-5 {
			m.tocLoading = true
			page := len(m.refs)/tocPageSize + 1
			return m, loadTOCCmd(m.catalog, m.novelID, page, tocPageSize)
		}
	case "g":
		m.tocCursor = 0
	case "G":
		m.tocCursor = m.tocLen() - 1
	case "/":
		m.tocFiltering = true
		m.tocFilter.Focus()
		return m, textinput.Blink
	case "enter":
		if ref, ok := m.selectedRef(); ok {
			return m, func() tea.Msg {
				return openChapterMsg{NovelID: m.novelID, ChapterID: ref.ID}
			}
		}
	case "r":
		if m.tocErr != "" {
			m.tocLoading = true
			m.tocErr = ""
			page := len(m.refs)/tocPageSize + 1
			return m, loadTOCCmd(m.catalog, m.novelID, page, tocPageSize)
		}
	}
	return m, nil
}

func (m detailModel) handleReviewKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	st := m.reviews.State()
	switch msg.String() {
	case "up", "k":
		if m.revCursor > 0 {
			m.revCursor--
		}
	case "down", "j":
		if m.revCursor < len(st.Items)-1 {
			m.revCursor++
		}
		if m.revCursor >= len(st.Items)-3 {
			req, ok := m.reviews.LoadMore()
			return m, maybeFetch(m.fetchRev, req, ok)
		}
	case "L":
		if m.revCursor < len(st.Items) {
			rev := st.Items[m.revCursor]
			return m, toggleLikeCmd(m.social, rev.ID, rev.LikedByMe)
		}
	case "n":
		m.composing = true
		m.rating = 5
		m.compose.SetValue("")
		m.compose.Focus()
		return m, textinput.Blink
	case "d":
		if m.revCursor < len(st.Items) {
			rev := st.Items[m.revCursor]
			if rev.UserID == m.social.CurrentUserID() {
				return m, deleteReviewCmd(m.social, rev.ID)
			}
			return m, statusCmd("You can only delete your own review", true)
		}
	case "r":
		if st.Err != "" {
			req, ok := m.reviews.Retry()
			return m, maybeFetch(m.fetchRev, req, ok)
		}
	}
	return m, nil
}

func (m detailModel) handleComposeKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.compose.Blur()
		return m, nil
	case "enter":
		body := strings.TrimSpace(m.compose.Value())
		if body == "" {
			return m, nil
		}
		m.composing = false
		m.compose.Blur()
		return m, postReviewCmd(m.social, m.novelID, m.rating, body)
	case "ctrl+k":
		if m.rating < 5 {
			m.rating++
		}
		return m, nil
	case "ctrl+j":
		if m.rating > 1 {
			m.rating--
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}
}

func (m detailModel) tocFilteringActive() bool { return m.tocFilter.Value() != "" }

func (m *detailModel) applyTOCFilter() {
	titles := make([]string, len(m.refs))
	for i, r := range m.refs {
		titles[i] = r.Title
	}
	m.tocMatches = search.FilterTitles(m.tocFilter.Value(), titles)
	m.tocCursor = 0
	m.tocOffset = 0
}

func (m detailModel) tocLen() int {
	if m.tocFilteringActive() {
		return len(m.tocMatches)
	}
	return len(m.refs)
}

func (m detailModel) selectedRef() (domain.ChapterRef, bool) {
	if m.tocFilteringActive() {
		if m.tocCursor < 0 || m.tocCursor >= len(m.tocMatches) {
			return domain.ChapterRef{}, false
		}
		return m.refs[m.tocMatches[m.tocCursor].Index], true
	}
	if m.tocCursor < 0 || m.tocCursor >= len(m.refs) {
		return domain.ChapterRef{}, false
	}
	return m.refs[m.tocCursor], true
}

func (m detailModel) View() string {
	var b strings.Builder

	title := "Novel"
	if m.novel != nil {
		title = m.novel.Title
	}
	b.WriteString(styles.Title.Render(title))
	if m.inLibrary {
		b.WriteString("  " + styles.FilterPillActive.Render(" in library "))
	}
	b.WriteString("\n")

	tabs := []string{"About", "Chapters", "Reviews"}
	var rendered []string
	for i, label := range tabs {
		if detailTab(i) == m.tab {
			rendered = append(rendered, styles.TabActive.Render(label))
		} else {
			rendered = append(rendered, styles.TabInactive.Render(label))
		}
	}
	b.WriteString(strings.Join(rendered, " │ "))
	b.WriteString("\n")

	if m.loadErr != "" {
		b.WriteString(styles.Error.Render(m.loadErr))
		return b.String()
	}

	switch m.tab {
	case detailTabAbout:
		b.WriteString(m.aboutView())
	case detailTabChapters:
		b.WriteString(m.tocView())
	case detailTabReviews:
		b.WriteString(m.reviewsView())
	}
	return b.String()
}

func (m detailModel) aboutView() string {
	if m.novel == nil {
		return styles.Muted.Render("Loading…")
	}
	n := m.novel

	var b strings.Builder
	b.WriteString(styles.Muted.Render("by "))
	b.WriteString(n.Author)
	b.WriteString("\n")

	var facts []string
	if n.Category != "" {
		facts = append(facts, n.Category)
	}
	facts = append(facts, n.StatusLabel(), fmt.Sprintf("%d chapters", n.Chapters))
	if wc := n.FormattedWordCount(); wc != "" {
		facts = append(facts, wc)
	}
	facts = append(facts, fmt.Sprintf("%.1f★", n.Rating))
	b.WriteString(styles.Muted.Render(strings.Join(facts, " · ")))
	b.WriteString("\n\n")
	b.WriteString(wrapText(n.Synopsis, m.width-2))
	b.WriteString("\n\n")

	if rec, ok := m.reader.LastRead(m.novelID); ok {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("Continue reading (%.0f%% through last chapter) — press c", rec.Progress*100)))
	} else {
		b.WriteString(styles.Muted.Render("Press c to start reading"))
	}
	b.WriteString("\n")
	if m.inLibrary {
		b.WriteString(styles.Muted.Render("x remove from library"))
	} else {
		b.WriteString(styles.Muted.Render("a add to library"))
	}
	return b.String()
}

func (m detailModel) tocView() string {
	var b strings.Builder

	if m.tocFiltering || m.tocFilteringActive() {
		b.WriteString(m.tocFilter.View())
		b.WriteString("\n")
	}

	if m.tocErr != "" && len(m.refs) == 0 {
		b.WriteString(styles.Error.Render(m.tocErr))
		b.WriteString("\n" + styles.Muted.Render("Press r to retry"))
		return b.String()
	}
	if m.tocLen() == 0 {
		if m.tocLoading {
			return b.String() + styles.Muted.Render("Loading chapters…")
		}
		if m.tocFilteringActive() {
			return b.String() + styles.Muted.Render("No matching chapters")
		}
		return b.String() + styles.Muted.Render("No chapters yet")
	}

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	offset := m.tocOffset
	if m.tocCursor < offset {
		offset = m.tocCursor
	}
	if m.tocCursor >= offset+visible {
		offset = m.tocCursor - visible + 1
	}

	lastRead := ""
	if rec, ok := m.reader.LastRead(m.novelID); ok {
		lastRead = rec.ChapterID
	}

	end := offset + visible
	if end > m.tocLen() {
		end = m.tocLen()
	}
	for pos := offset; pos < end; pos++ {
		idx := pos
		if m.tocFilteringActive() {
			idx = m.tocMatches[pos].Index
		}
		ref := m.refs[idx]
		line := fmt.Sprintf("%4d  %s", ref.Index, ref.Title)
		if ref.ID == lastRead {
			line += "  ●"
		}
		if pos == m.tocCursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d of %d chapters", len(m.refs), m.tocTotal))
	if m.tocLoading {
		parts = append(parts, "loading more…")
	}
	if m.tocErr != "" {
		parts = append(parts, styles.Error.Render(m.tocErr))
	}
	b.WriteString(styles.Muted.Render(strings.Join(parts, " · ")))
	return b.String()
}

func (m detailModel) reviewsView() string {
	var b strings.Builder

	if m.composing {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("Rating: %s (ctrl+k/ctrl+j to adjust, enter to post, esc to cancel)", stars(m.rating))))
		b.WriteString("\n")
		b.WriteString(m.compose.View())
		b.WriteString("\n\n")
	}

	st := m.reviews.State()
	switch {
	case st.LoadingInitial:
		b.WriteString(styles.Muted.Render("Loading reviews…"))
	case st.Err != "" && len(st.Items) == 0:
		b.WriteString(styles.Error.Render(st.Err))
		b.WriteString("\n" + styles.Muted.Render("Press r to retry"))
	case len(st.Items) == 0:
		b.WriteString(styles.Muted.Render("No reviews yet — press n to write one"))
	default:
		for i, rev := range st.Items {
			heart := "♡"
			if rev.LikedByMe {
				heart = styles.FilterPillActive.Render("♥")
			}
			head := fmt.Sprintf("%s %s  %s %d  %s", stars(rev.Rating), rev.Username, heart, rev.Likes,
				time.Unix(rev.CreatedAt, 0).Format("Jan 2, 2006"))
			if i == m.revCursor {
				b.WriteString(styles.Selected.Render("> " + head))
			} else {
				b.WriteString("  " + head)
			}
			b.WriteString("\n    ")
			b.WriteString(styles.Muted.Render(truncateLine(rev.Body, m.width-6)))
			b.WriteString("\n")
		}
		var parts []string
		parts = append(parts, fmt.Sprintf("%d of %d", len(st.Items), st.Total), "n new review · L like · d delete")
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

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func truncateLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// wrapText folds text at word boundaries to the given width.
func wrapText(s string, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		line := 0
		for _, w := range words {
			if line > 0 && line+1+len([]rune(w)) > width {
				b.WriteString("\n")
				line = 0
			} else if line > 0 {
				b.WriteString(" ")
				line++
			}
			b.WriteString(w)
			line += len([]rune(w))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
