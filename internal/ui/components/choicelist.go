package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjunv/praktis/internal/api"
	"github.com/arjunv/praktis/internal/ui/theme"
)

// ChoiceList presents answer choices in the exact order the server
// served them. Correctness is never known locally; after grading the
// caller marks the chosen entry via SetGraded.
type ChoiceList struct {
	Choices  []api.Choice
	Selected int
	Locked   bool

	graded       bool
	gradedChoice string
	correct      bool
}

// NewChoiceList creates a choice list over a pre-ordered choice slice.
func NewChoiceList(choices []api.Choice) ChoiceList {
	return ChoiceList{Choices: choices}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Selection is frozen while Locked
// (during submission or cooldown).
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Locked {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Choices)-1 {
			c.Selected++
		}
	}

	return c, nil
}

// SelectedID returns the choice id under the cursor, or "" when the
// list is empty.
func (c ChoiceList) SelectedID() string {
	if c.Selected < 0 || c.Selected >= len(c.Choices) {
		return ""
	}
	return c.Choices[c.Selected].ID
}

// SetGraded records the server's verdict for the given choice id.
func (c *ChoiceList) SetGraded(choiceID string, correct bool) {
	c.graded = true
	c.gradedChoice = choiceID
	c.correct = correct
}

// ClearGrade resets grading state for a fresh attempt.
func (c *ChoiceList) ClearGrade() {
	c.graded = false
	c.gradedChoice = ""
	c.correct = false
}

// View renders the choice list.
func (c ChoiceList) View() string {
	var s string
	for i, choice := range c.Choices {
		label := choiceLabel(i)
		prefix := "  "
		if i == c.Selected && !c.Locked {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, choice.Text)

		switch {
		case c.graded && choice.ID == c.gradedChoice && c.correct:
			s += theme.Correct.Render(line) + "\n"
		case c.graded && choice.ID == c.gradedChoice:
			s += theme.Incorrect.Render(line) + "\n"
		case c.graded:
			s += theme.Disabled.Render(line) + "\n"
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

func choiceLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}
