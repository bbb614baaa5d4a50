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
	"github.com/seralin/inkwell/internal/tui/styles"
)

// profileEditField selects which profile field the edit input targets.
type profileEditField int

const (
	editNone profileEditField = iota
	editUsername
	editBio
)

// profileModel shows the signed-in user's profile and allows editing the
// username and bio. Edits are sent as partial patches; untouched fields stay
// untouched on the server.
type profileModel struct {
	profile *domain.UserProfile
	loading bool
	loadErr string

	editing profileEditField
	input   textinput.Model

	svc *service.SessionService

	width  int
	height int
}

func newProfileModel(svc *service.SessionService) profileModel {
	input := textinput.New()
	input.CharLimit = 200

	return profileModel{
		input: input,
		svc:   svc,
	}
}

func (m profileModel) start() (profileModel, tea.Cmd) {
	if !m.svc.SignedIn() {
		return m, nil
	}
	m.loading = true
	return m, loadProfileCmd(m.svc, "")
}

func (m profileModel) setSize(width, height int) profileModel {
	m.width = width
	m.height = height
	return m
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ProfileMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = pager.Humanize(msg.Err, "Failed to load profile")
			return m, nil
		}
		m.loadErr = ""
		m.profile = msg.Profile
		return m, nil

	case SignedOutMsg:
		if msg.Err != nil {
			return m, statusCmd(pager.Humanize(msg.Err, "Sign-out failed"), true)
		}
		m.profile = nil
		return m, statusCmd("Signed out", false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m profileModel) handleKey(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.editing != editNone {
		switch msg.String() {
		case "esc":
			m.editing = editNone
			m.input.Blur()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			field := m.editing
			m.editing = editNone
			m.input.Blur()

			var patch domain.ProfilePatch
			switch field {
			case editUsername:
				if value == "" {
					return m, statusCmd("Username cannot be empty", true)
				}
				patch.Username = &value
			case editBio:
				patch.Bio = &value
			}
			m.loading = true
			return m, updateProfileCmd(m.svc, patch)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "u":
		if m.profile != nil {
			m.editing = editUsername
			m.input.Placeholder = "username"
			m.input.SetValue(m.profile.Username)
			m.input.Focus()
			return m, textinput.Blink
		}
	case "b":
		if m.profile != nil {
			m.editing = editBio
			m.input.Placeholder = "bio"
			m.input.SetValue(m.profile.Bio)
			m.input.Focus()
			return m, textinput.Blink
		}
	case "o":
		if m.svc.SignedIn() {
			return m, signOutCmd(m.svc)
		}
	case "r":
		if m.loadErr != "" {
			return m.start()
		}
	}
	return m, nil
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Profile"))
	b.WriteString("\n")

	if !m.svc.SignedIn() {
		b.WriteString(styles.Muted.Render("Not signed in. Restart with credentials to sign in."))
		return b.String()
	}

	switch {
	case m.loading:
		b.WriteString(styles.Muted.Render("Loading profile…"))
	case m.loadErr != "":
		b.WriteString(styles.Error.Render(m.loadErr))
		b.WriteString("\n" + styles.Muted.Render("Press r to retry"))
	case m.profile != nil:
		p := m.profile
		b.WriteString(styles.Highlight.Render(p.Username))
		b.WriteString("\n")
		if p.Bio != "" {
			b.WriteString(wrapText(p.Bio, m.width-2))
		} else {
			b.WriteString(styles.Muted.Render("No bio yet"))
		}
		b.WriteString("\n\n")

		var facts []string
		if p.NovelsWritten > 0 {
			facts = append(facts, fmt.Sprintf("%d novels written", p.NovelsWritten))
		}
		facts = append(facts, fmt.Sprintf("%dh total reading time", p.ReadingTime/3600))
		if p.JoinedAt > 0 {
			facts = append(facts, "joined "+time.Unix(p.JoinedAt, 0).Format("Jan 2006"))
		}
		b.WriteString(styles.Muted.Render(strings.Join(facts, " · ")))
		b.WriteString("\n\n")

		if m.editing != editNone {
			b.WriteString(m.input.View())
			b.WriteString("\n")
		} else {
			b.WriteString(styles.Muted.Render("u edit username · b edit bio · o sign out"))
		}
	}
	return b.String()
}
