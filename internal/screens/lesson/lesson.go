package lesson

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/ui/components"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// LessonScreen shows the active word of today's lesson.
type LessonScreen struct {
	word     progress.VocabularyWord
	index    int
	total    int
	language progress.Language
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a lesson screen showing the word at index.
func New(lesson progress.DailyLesson, index int, language progress.Language) *LessonScreen {
	s := &LessonScreen{index: index, total: len(lesson.Words), language: language}
	if index >= 0 && index < len(lesson.Words) {
		s.word = lesson.Words[index]
	}
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return "Today's Session"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "I've practiced this"},
		{Key: "S", Description: "Listen"},
		{Key: "L", Description: "Language"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		return s, func() tea.Msg { return screen.CompleteWordMsg{} }
	case "s", "p":
		return s, func() tea.Msg { return screen.SpeakWordMsg{} }
	case "l":
		return s, func() tea.Msg { return screen.ChangeLanguageMsg{} }
	}
	return s, nil
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	bar := components.NewProgressBar("Today's session", s.index, s.total, cw).View()
	card := components.WordCard(s.word, cw)
	calm := theme.Hint.Render("Take your time. There is no rush.")

	content := lipgloss.JoinVertical(lipgloss.Center, bar, "", card, "", calm)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
