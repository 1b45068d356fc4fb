// Package screen defines what the router drives and the intent messages
// screens send back. Screens never call the controller themselves: they
// report what the user asked for and the app model carries it out, then
// swaps in the screen for the resulting view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/ui/layout"
)

// Screen is one view of the TUI. The router owns the stack; the app frame
// draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body for the space left by the header and footer.
	View(width, height int) string

	// Title is centered in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// SelectLanguageMsg picks a language and starts its lesson.
type SelectLanguageMsg struct {
	Language progress.Language
}

// CompleteWordMsg marks the active word practiced.
type CompleteWordMsg struct{}

// SpeakWordMsg pronounces the active word.
type SpeakWordMsg struct{}

// ChangeLanguageMsg returns to the language menu.
type ChangeLanguageMsg struct{}

// RetryMsg retries a failed lesson fetch.
type RetryMsg struct{}

// AuthenticateMsg signs in, or signs up when SignUp is set.
type AuthenticateMsg struct {
	Credentials auth.Credentials
	SignUp      bool
}

// AuthFailedMsg tells the sign-in screen why authentication failed.
type AuthFailedMsg struct {
	Err error
}

// ShowHistoryMsg opens the list of completed lessons.
type ShowHistoryMsg struct{}
