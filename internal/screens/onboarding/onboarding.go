package onboarding

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/ui/components"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// OnboardingScreen lets the user pick the language to learn.
type OnboardingScreen struct {
	menu    components.Menu
	current *progress.Language
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates the language menu. current, when set, is preselected.
func New(current *progress.Language) *OnboardingScreen {
	langs := progress.Languages()
	items := make([]components.MenuItem, 0, len(langs))
	for i, lang := range langs {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d  %s", i+1, lang),
			Action: selectCmd(lang),
		})
	}

	menu := components.NewMenu(items)
	if current != nil {
		for i, lang := range langs {
			if lang == *current {
				menu.Selected = i
			}
		}
	}
	return &OnboardingScreen{menu: menu, current: current}
}

func selectCmd(lang progress.Language) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return screen.SelectLanguageMsg{Language: lang} }
	}
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return nil
}

func (s *OnboardingScreen) Title() string {
	return "Choose a language"
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *OnboardingScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("What would you like to learn today?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("A few words a day, at your own pace."))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.menu.View()))

	if s.current != nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Picking a language starts a fresh lesson for today."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
