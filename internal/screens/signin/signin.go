package signin

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/ui/components"
	"github.com/abhisek/lingocalm/internal/ui/layout"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

const (
	fieldEmail = iota
	fieldPassword
)

// SignInScreen collects an email and password. Ctrl+N switches between
// signing in and creating an account.
type SignInScreen struct {
	email    components.TextInput
	password components.TextInput
	focus    int
	signUp   bool
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*SignInScreen)(nil)
var _ screen.KeyHintProvider = (*SignInScreen)(nil)

// New creates the sign-in form.
func New() *SignInScreen {
	s := &SignInScreen{
		email:    components.NewTextInput("you@example.com", false, 254),
		password: components.NewTextInput("password", true, 128),
	}
	s.email.Focus()
	return s
}

func (s *SignInScreen) Init() tea.Cmd {
	return s.email.Focus()
}

func (s *SignInScreen) Title() string {
	if s.signUp {
		return "Create an account"
	}
	return "Sign in"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	toggle := "New account"
	if s.signUp {
		toggle = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+N", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.AuthFailedMsg:
		s.busy = false
		s.errMsg = describe(msg.Err)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleFocus()
		case "ctrl+n":
			s.signUp = !s.signUp
			s.errMsg = ""
			return s, nil
		case "enter":
			if s.focus == fieldEmail {
				return s, s.toggleFocus()
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focus == fieldEmail {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *SignInScreen) toggleFocus() tea.Cmd {
	if s.focus == fieldEmail {
		s.focus = fieldPassword
		s.email.Blur()
		return s.password.Focus()
	}
	s.focus = fieldEmail
	s.password.Blur()
	return s.email.Focus()
}

func (s *SignInScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	creds := auth.Credentials{
		Email:    strings.TrimSpace(s.email.Value()),
		Password: s.password.Value(),
	}
	if err := creds.Validate(); err != nil {
		s.errMsg = describe(err)
		return nil
	}
	s.busy = true
	s.errMsg = ""
	signUp := s.signUp
	return func() tea.Msg {
		return screen.AuthenticateMsg{Credentials: creds, SignUp: signUp}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		return "That email already has an account. Press Ctrl+N to sign in."
	case errors.Is(err, auth.ErrInvalidCredentials):
		msg := err.Error()
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	default:
		return "Something went wrong. Please try again."
	}
}

func (s *SignInScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(s.Title()))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(s.email.View())
	b.WriteString("\n\n")
	b.WriteString(label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(s.password.View())
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("One moment..."))
	case s.errMsg != "":
		b.WriteString(theme.Warning.Render(s.errMsg))
	}

	form := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
