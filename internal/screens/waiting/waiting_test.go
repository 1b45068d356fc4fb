package waiting

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/screen"
)

func TestWaitingScreen_Generating(t *testing.T) {
	s := New("Crafting a calm Spanish lesson for you...", false)
	if s.Init() == nil {
		t.Error("expected spinner tick while generating")
	}
	if !strings.Contains(s.View(80, 24), "Crafting a calm Spanish lesson") {
		t.Error("view should show the message")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("retry must not be offered while a fetch is running")
	}
}

func TestWaitingScreen_FailedOffersRetry(t *testing.T) {
	s := New("We couldn't generate the lesson right now.", true)
	if s.Init() != nil {
		t.Error("no spinner after a failure")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	if _, ok := cmd().(screen.RetryMsg); !ok {
		t.Errorf("expected RetryMsg, got %T", cmd())
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command on esc")
	}
	if _, ok := cmd().(screen.ChangeLanguageMsg); !ok {
		t.Errorf("expected ChangeLanguageMsg, got %T", cmd())
	}
}
