package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/arjunv/praktis/internal/mathtext"
	prac "github.com/arjunv/praktis/internal/practice"
	"github.com/arjunv/praktis/internal/ui/components"
	"github.com/arjunv/praktis/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.loading || !s.seq.HasItem() {
		return renderLoading(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderItem(width)
}

// renderItem renders the active step of the current item.
func (s *PracticeScreen) renderItem(width int) string {
	payload := s.seq.Payload()
	step := s.seq.ActiveStep()

	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	if s.securityTripped {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Session security check failed. Restart to continue answering."))
		b.WriteString("\n\n")
	}

	// Prompt. Multi-step items show the item content above the step.
	if s.seq.MultiStep() {
		content := mathtext.RenderMarkup(s.render, payload.Item.Content.HTML)
		if content != "" {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(content))
			b.WriteString("\n\n")
		}
	}
	prompt := mathtext.RenderMarkup(s.render, step.Prompt.HTML)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt))
	b.WriteString("\n\n")

	// Media alt text; a terminal cannot render the assets themselves.
	for _, m := range payload.Item.Media {
		if m.Alt == "" {
			continue
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("[image: " + m.Alt + "]"))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")
	b.WriteString(s.renderSubmitLine(width))

	if s.transMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.transMsg))
	}

	if snap := s.tracker.Snapshot(); snap != nil && snap.Overall.Attempts > 0 {
		bar := components.NewProgressBar("accuracy", snap.Overall.Accuracy, true, min(width-8, 50))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	}

	if wm := payload.Serve.Watermark; wm != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Right).
			Foreground(theme.Border).
			Render(wm + "  "))
	}

	return b.String()
}

// renderInfoLine renders the filter and progress summary line.
func (s *PracticeScreen) renderInfoLine(width int) string {
	typeName := "all types"
	if s.filter.Type != "" {
		typeName = s.filter.Type
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + typeName)
	if s.filter.HasPlaylist() {
		left += lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("  playlist(%d)", len(s.filter.PlaylistIDs)))
	}

	var parts []string
	if s.seq.MultiStep() {
		parts = append(parts, fmt.Sprintf("step %d/%d", s.seq.StepIndex()+1, s.seq.StepCount()))
	}
	if snap := s.tracker.Snapshot(); snap != nil {
		parts = append(parts, fmt.Sprintf("%d/%d correct (%.0f%%)",
			snap.Overall.Correct, snap.Overall.Attempts, snap.Overall.Accuracy*100))
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(parts, "  "))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderSubmitLine shows the submit affordance, or the cooldown
// countdown while submissions are locked.
func (s *PracticeScreen) renderSubmitLine(width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	now := time.Now()
	switch {
	case s.sub.CoolingDown(now):
		remaining := prac.CooldownRemaining(now, s.sub.CooldownUntil)
		return style.Foreground(theme.Accent).Render(
			fmt.Sprintf("Too many attempts. Locked for %.1fs", remaining.Seconds()))
	case s.submitting:
		return style.Foreground(theme.TextDim).Render("Checking...")
	case !s.canSubmit():
		return style.Foreground(theme.TextDim).Render("Select an answer, then press Enter")
	default:
		return style.Foreground(theme.Primary).Render("Press Enter to submit")
	}
}

// renderFeedback renders the graded result overlay.
func (s *PracticeScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.sub.LastResult == prac.ResultCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")

	if s.sub.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(mathtext.RenderMarkup(s.render, s.sub.Explanation))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}

	if s.hintLoading {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nThinking of a hint..."))
		b.WriteString("\n")
	} else if s.hintText != "" {
		hint := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Accent).
			Render("Hint: " + s.hintText)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
		b.WriteString("\n")
	}

	if s.pendingAdvance {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render("\nNext step ahead"))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\nPress Enter to continue"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Fetching the next item...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
