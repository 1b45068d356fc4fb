package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/router"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/store"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// Limit is the number of lessons the screen loads.
const Limit = 30

type historyLoadedMsg struct {
	Records []store.LessonRecord
	Err     error
}

// HistoryScreen lists completed lessons, newest first.
type HistoryScreen struct {
	repo     store.HistoryRepo
	userID   string
	records  []store.LessonRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for userID.
func New(repo store.HistoryRepo, userID string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userID := s.repo, s.userID
	return func() tea.Msg {
		records, err := repo.History(context.Background(), userID, Limit)
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Words"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"\n\n  No completed lessons yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.records {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %-9s  %d words  streak %d",
			prefix, r.LessonID, r.Language, len(r.Words), r.Streak)
		b.WriteString(center(style, line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(center(theme.Hint, "    "+strings.Join(r.Words, " · ")))
			b.WriteString("\n")
		}
	}

	return b.String()
}
