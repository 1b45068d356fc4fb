package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/store"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// SummaryScreen is shown once today's lesson is complete.
type SummaryScreen struct {
	state progress.State
	stats *store.Stats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. stats may be nil when the history is
// unavailable.
func New(state progress.State, stats *store.Stats) *SummaryScreen {
	return &SummaryScreen{state: state, stats: stats}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "H", Description: "History"},
		{Key: "L", Description: "Change language"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "h":
			return s, func() tea.Msg { return screen.ShowHistoryMsg{} }
		case "l":
			return s, func() tea.Msg { return screen.ChangeLanguageMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true), "✓"))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session Complete"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "You've successfully practiced today."))
	b.WriteString("\n\n")

	days := "days learned"
	if s.state.Streak == 1 {
		days = "day learned"
	}
	total := lipgloss.NewStyle().Foreground(theme.TextDim).Render("TOTAL PROGRESS") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("%d", s.state.Streak)) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(days)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(total)))
	b.WriteString("\n\n")

	if s.state.CurrentLesson != nil {
		words := make([]string, 0, len(s.state.CurrentLesson.Words))
		for _, w := range s.state.CurrentLesson.Words {
			words = append(words, w.TargetWord)
		}
		b.WriteString(center(theme.Hint, strings.Join(words, " · ")))
		b.WriteString("\n")
	}

	if s.stats != nil {
		line := fmt.Sprintf("Lessons: %d        Words: %d", s.stats.TotalLessons, s.stats.TotalWords)
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(theme.Hint, "Come back tomorrow for new words."))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
