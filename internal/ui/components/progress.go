package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a step counter.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
	}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the label line and the bar.
func (p ProgressBar) View() string {
	counter := fmt.Sprintf("%d / %d", min(p.Done+1, p.Total), p.Total)
	gap := max(p.Width-lipgloss.Width(p.Label)-lipgloss.Width(counter), 1)
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		strings.ToUpper(p.Label) + strings.Repeat(" ", gap) + counter)

	barWidth := max(p.Width, 4)
	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	bar := lipgloss.NewStyle().Background(theme.Primary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	return header + "\n" + bar
}
