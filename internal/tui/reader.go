package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/config"
	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/tui/styles"
)

// readerModel is the chapter reading view. The viewport holds the wrapped
// chapter text; every scroll reports the position to the progress tracker,
// which throttles the actual writes.
type readerModel struct {
	novelID   string
	chapterID string
	chapter   *domain.Chapter
	loading   bool
	loadErr   string

	vp      viewport.Model
	ready   bool
	restore int // Scroll offset to apply once the chapter arrives, -1 for none.

	tracker *service.ProgressTracker

	// Chapter comments, shown below the text on demand.
	showComments bool
	comments     *pager.Controller[domain.Comment]
	comStarted   bool
	fetchCom     func(context.Context, pager.Request) ([]domain.Comment, int, error)
	composing    bool
	compose      textinput.Model

	svc     *service.ReaderService
	social  *service.SocialService
	readCfg config.ReaderConfig

	width  int
	height int
}

func newReaderModel(novelID, chapterID string, svc *service.ReaderService, social *service.SocialService, readCfg config.ReaderConfig, pageSize int) readerModel {
	comments := pager.New[domain.Comment](pager.KindComments, pager.Options{
		Initial:     pager.FilterSet{PageSize: pageSize},
		ErrFallback: "Failed to load comments",
	})

	compose := textinput.New()
	compose.Placeholder = "write a comment"
	compose.CharLimit = 300

	restore := -1
	if off, ok := svc.RestorePoint(novelID, chapterID); ok {
		restore = off
	}

	return readerModel{
		novelID:   novelID,
		chapterID: chapterID,
		loading:   true,
		restore:   restore,
		tracker:   svc.Tracker(novelID),
		comments:  comments,
		fetchCom:  social.FetchComments(chapterID),
		compose:   compose,
		svc:       svc,
		social:    social,
		readCfg:   readCfg,
	}
}

func (m readerModel) start() (readerModel, tea.Cmd) {
	return m, loadChapterCmd(m.svc, m.novelID, m.chapterID)
}

// flush writes any throttled progress immediately. The root model calls this
// when the reader is left or the program quits.
func (m readerModel) flush() {
	m.tracker.Flush()
}

func (m readerModel) setSize(width, height int) readerModel {
	m.width = width
	m.height = height
	vpHeight := height - 3
	if m.showComments {
		vpHeight = height/2 - 2
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.vp = viewport.New(width, vpHeight)
		m.ready = true
		if m.chapter != nil {
			m.vp.SetContent(m.renderContent())
		}
	} else {
		m.vp.Width = width
		m.vp.Height = vpHeight
	}
	return m
}

func (m readerModel) Update(msg tea.Msg) (readerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ChapterMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = pager.Humanize(msg.Err, "Failed to load chapter")
			return m, nil
		}
		m.loadErr = ""
		m.chapter = msg.Chapter
		m.chapterID = msg.Chapter.ID
		if m.ready {
			m.vp.SetContent(m.renderContent())
			if m.restore >= 0 {
				m.vp.SetYOffset(m.restore)
				m.restore = -1
			} else {
				m.vp.GotoTop()
			}
		}
		return m, nil

	case PageMsg[domain.Comment]:
		m.comments.Resolve(msg.Req, msg.Items, msg.Total, msg.Err)
		return m, nil

	case CommentPostedMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Failed to post comment"), true)
		}
		req, ok := m.comments.Retry()
		return m, tea.Batch(maybeFetch(m.fetchCom, req, ok), statusCmd("Comment posted", false))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m readerModel) handleKey(msg tea.KeyMsg) (readerModel, tea.Cmd) {
	if m.composing {
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
			return m, postCommentCmd(m.social, m.chapterID, body)
		default:
			var cmd tea.Cmd
			m.compose, cmd = m.compose.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		m.vp.LineUp(1)
		return m.tracked(), nil
	case "down", "j":
		m.vp.LineDown(1)
		return m.tracked(), nil
	case "pgup", "b":
		m.vp.ViewUp()
		return m.tracked(), nil
	case "pgdown", "f", " ":
		m.vp.ViewDown()
		return m.tracked(), nil
	case "g":
		m.vp.GotoTop()
		return m.tracked(), nil
	case "G":
		m.vp.GotoBottom()
		return m.tracked(), nil
	case "[", "left":
		return m.openSibling(func(ch *domain.Chapter) string { return ch.PrevID })
	case "]", "right":
		return m.openSibling(func(ch *domain.Chapter) string { return ch.NextID })
	case "C":
		m.showComments = !m.showComments
		m = m.setSize(m.width, m.height)
		if m.showComments && !m.comStarted {
			m.comStarted = true
			req, ok := m.comments.Start()
			return m, maybeFetch(m.fetchCom, req, ok)
		}
		return m, nil
	case "n":
		if m.showComments {
			m.composing = true
			m.compose.SetValue("")
			m.compose.Focus()
			return m, textinput.Blink
		}
	case "r":
		if m.loadErr != "" {
			m.loading = true
			m.loadErr = ""
			return m, loadChapterCmd(m.svc, m.novelID, m.chapterID)
		}
		if m.showComments && m.comments.State().Err != "" {
			req, ok := m.comments.Retry()
			return m, maybeFetch(m.fetchCom, req, ok)
		}
	}
	return m, nil
}

// tracked reports the current scroll position to the throttled tracker.
func (m readerModel) tracked() readerModel {
	if m.chapter == nil {
		return m
	}
	m.tracker.Track(m.chapter.ID, m.vp.ScrollPercent(), m.vp.YOffset)
	return m
}

// openSibling flushes progress and switches to the previous or next chapter.
func (m readerModel) openSibling(pick func(*domain.Chapter) string) (readerModel, tea.Cmd) {
	if m.chapter == nil {
		return m, nil
	}
	id := pick(m.chapter)
	if id == "" {
		return m, statusCmd("No more chapters in that direction", false)
	}
	m.flush()

	next := newReaderModel(m.novelID, id, m.svc, m.social, m.readCfg, m.comments.Filters().PageSize)
	next = next.setSize(m.width, m.height)
	return next.start()
}

// renderContent wraps the chapter body to the configured line width with the
// configured blank lines between paragraphs.
func (m readerModel) renderContent() string {
	width := m.readCfg.LineWidth
	if width <= 0 || width > m.width-2 {
		width = m.width - 2
	}
	if width < 20 {
		width = 20
	}

	spacing := m.readCfg.LineSpacing
	if spacing < 1 {
		spacing = 1
	}
	gap := strings.Repeat("\n", spacing)

	var paras []string
	for _, p := range strings.Split(m.chapter.Content, "\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paras = append(paras, wrapText(p, width))
	}

	body := fmt.Sprintf("%s\n%s%s", styles.Title.Render(m.chapter.Title), gap,
		styles.ReaderText.Render(strings.Join(paras, gap)))
	return body
}

func (m readerModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(styles.Muted.Render("Loading chapter…"))
	case m.loadErr != "":
		b.WriteString(styles.Error.Render(m.loadErr))
		b.WriteString("\n" + styles.Muted.Render("Press r to retry"))
	default:
		b.WriteString(m.vp.View())
		b.WriteString("\n")
		b.WriteString(m.footer())
		if m.showComments {
			b.WriteString("\n")
			b.WriteString(m.commentsView())
		}
	}
	return b.String()
}

func (m readerModel) footer() string {
	if m.chapter == nil {
		return ""
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("ch.%d %s", m.chapter.Index, m.chapter.Title))
	parts = append(parts, fmt.Sprintf("%.0f%%", m.vp.ScrollPercent()*100))
	parts = append(parts, "[ prev · ] next · C comments")
	return styles.Muted.Render(truncateLine(strings.Join(parts, " · "), m.width))
}

func (m readerModel) commentsView() string {
	var b strings.Builder
	st := m.comments.State()

	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("── Comments (%d) ──", st.Total)))
	b.WriteString("\n")

	if m.composing {
		b.WriteString(m.compose.View())
		b.WriteString("\n")
	}

	switch {
	case st.LoadingInitial:
		b.WriteString(styles.Muted.Render("Loading comments…"))
	case st.Err != "" && len(st.Items) == 0:
		b.WriteString(styles.Error.Render(st.Err))
	case len(st.Items) == 0:
		b.WriteString(styles.Muted.Render("No comments yet — press n to add one"))
	default:
		limit := m.height/2 - 4
		if limit < 1 {
			limit = 1
		}
		for i, c := range st.Items {
			if i >= limit {
				break
			}
			b.WriteString(styles.Highlight.Render(c.Username))
			b.WriteString("  ")
			b.WriteString(truncateLine(c.Body, m.width-len([]rune(c.Username))-4))
			b.WriteString("\n")
		}
		if st.Err != "" {
			b.WriteString(styles.Error.Render(st.Err))
		}
	}
	return b.String()
}
