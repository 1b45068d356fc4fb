package waiting

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// WaitingScreen covers loading and lesson generation. After a failed fetch
// it offers a retry instead of the spinner.
type WaitingScreen struct {
	spinner spinner.Model
	message string
	failed  bool
}

var _ screen.Screen = (*WaitingScreen)(nil)
var _ screen.KeyHintProvider = (*WaitingScreen)(nil)

// New creates a waiting screen showing message.
func New(message string, failed bool) *WaitingScreen {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)
	return &WaitingScreen{spinner: sp, message: message, failed: failed}
}

func (s *WaitingScreen) Init() tea.Cmd {
	if s.failed {
		return nil
	}
	return s.spinner.Tick
}

func (s *WaitingScreen) Title() string {
	return ""
}

func (s *WaitingScreen) KeyHints() []layout.KeyHint {
	if s.failed {
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "L", Description: "Languages"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *WaitingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.failed {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if !s.failed {
			return s, nil
		}
		switch msg.String() {
		case "r", "enter":
			return s, func() tea.Msg { return screen.RetryMsg{} }
		case "l", "esc":
			return s, func() tea.Msg { return screen.ChangeLanguageMsg{} }
		}
	}
	return s, nil
}

func (s *WaitingScreen) View(width, height int) string {
	var content string
	if s.failed {
		content = theme.Warning.Render(s.message) + "\n\n" +
			theme.Hint.Render("Press r to try again.")
	} else {
		content = s.spinner.View() + "  " + theme.Body.Render(s.message)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
