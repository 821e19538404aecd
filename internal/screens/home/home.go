package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/router"
	"github.com/arjunv/praktis/internal/screen"
	"github.com/arjunv/praktis/internal/screens/history"
	practicescreen "github.com/arjunv/praktis/internal/screens/practice"
	"github.com/arjunv/praktis/internal/ui/components"
	"github.com/arjunv/praktis/internal/ui/layout"
	"github.com/arjunv/praktis/internal/ui/theme"
)

// HomeScreen is the entry menu of the application.
type HomeScreen struct {
	menu    components.Menu
	baseURL string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. opts flows through to each practice
// screen the menu spawns.
func New(svc api.Service, opts practicescreen.Options, baseURL string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PRACTICE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practicescreen.New(svc, opts)}
			}
		}},
		{Label: "HISTORY", Disabled: opts.Events == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(opts.Events)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		baseURL: baseURL,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("P R A K T I S"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("adaptive practice, one item at a time"))
	sections = append(sections, "")
	sections = append(sections, h.menu.View())
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(h.baseURL))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}
