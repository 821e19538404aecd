package playlist

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/router"
	"github.com/arjunv/praktis/internal/screen"
	"github.com/arjunv/praktis/internal/ui/components"
	"github.com/arjunv/praktis/internal/ui/layout"
	"github.com/arjunv/praktis/internal/ui/theme"
)

// Callbacks notifies the opener when the server-side playlist changes.
type Callbacks struct {
	Applied func(ids []string)
	Cleared func()
}

// appliedMsg is sent when the playlist update completes server-side.
type appliedMsg struct {
	IDs     []string // nil means cleared
	Cleared bool
	Err     error
}

// PlaylistScreen edits the session's item playlist: a comma-separated
// list of item ids that overrides normal selection until cleared.
type PlaylistScreen struct {
	svc   api.Service
	sess  api.Session
	cb    Callbacks
	input components.TextInput

	busy   bool
	errMsg string
}

var _ screen.Screen = (*PlaylistScreen)(nil)
var _ screen.KeyHintProvider = (*PlaylistScreen)(nil)

// New creates a playlist screen.
func New(svc api.Service, sess api.Session, cb Callbacks) *PlaylistScreen {
	return &PlaylistScreen{
		svc:   svc,
		sess:  sess,
		cb:    cb,
		input: components.NewTextInput("item-id-1, item-id-2, ...", 0),
	}
}

func (s *PlaylistScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PlaylistScreen) Title() string {
	return "Playlist"
}

func (s *PlaylistScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Apply"},
		{Key: "Ctrl+D", Description: "Clear playlist"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlaylistScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case appliedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.input.Submit(false)
			return s, nil
		}
		if msg.Cleared {
			if s.cb.Cleared != nil {
				s.cb.Cleared()
			}
		} else if s.cb.Applied != nil {
			s.cb.Applied(msg.IDs)
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s, s.apply()
		case "ctrl+d":
			return s, s.clear()
		}
		s.errMsg = ""
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *PlaylistScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Practice a specific set of items"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Enter item ids separated by commas. The playlist stays active until cleared."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")

	if s.busy {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nApplying..."))
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n" + s.errMsg))
	}

	return b.String()
}

// apply parses the entered ids and persists them server-side.
func (s *PlaylistScreen) apply() tea.Cmd {
	ids := parseIDs(s.input.Value())
	if len(ids) == 0 {
		s.errMsg = "enter at least one item id"
		return nil
	}
	if !s.sess.Ready() {
		s.errMsg = "session unavailable"
		return nil
	}

	s.busy = true
	s.errMsg = ""
	return func() tea.Msg {
		err := s.svc.SetPlaylist(context.Background(), ids, s.sess.CSRFToken)
		return appliedMsg{IDs: ids, Err: err}
	}
}

func (s *PlaylistScreen) clear() tea.Cmd {
	if !s.sess.Ready() {
		s.errMsg = "session unavailable"
		return nil
	}
	s.busy = true
	s.errMsg = ""
	return func() tea.Msg {
		err := s.svc.ClearPlaylist(context.Background(), s.sess.CSRFToken)
		return appliedMsg{Cleared: true, Err: err}
	}
}

// parseIDs splits a comma-separated id list, dropping empties.
func parseIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
