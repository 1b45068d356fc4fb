package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/store"
)

func testState() progress.State {
	lang := progress.Italian
	return progress.State{
		Language: &lang,
		CurrentLesson: &progress.DailyLesson{
			ID: "2026-01-29",
			Words: []progress.VocabularyWord{
				{TargetWord: "Ciao", Practiced: true},
				{TargetWord: "Grazie", Practiced: true},
			},
			Completed: true,
		},
		CompletedToday: true,
		Streak:         4,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testState(), nil)
	if s.Title() != "Session Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testState(), &store.Stats{TotalLessons: 4, TotalWords: 20})
	view := s.View(80, 24)
	for _, want := range []string{"4", "days learned", "Ciao", "Grazie", "Lessons: 4", "Words: 20"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_SingleDay(t *testing.T) {
	st := testState()
	st.Streak = 1
	view := New(st, nil).View(80, 24)
	if !strings.Contains(view, "day learned") || strings.Contains(view, "days learned") {
		t.Error("expected singular day label")
	}
	if strings.Contains(view, "Lessons:") {
		t.Error("stats line should be hidden without stats")
	}
}

func TestSummaryScreen_ChangeLanguage(t *testing.T) {
	s := New(testState(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'l', Text: "l"})
	if cmd == nil {
		t.Fatal("expected command on l")
	}
	if _, ok := cmd().(screen.ChangeLanguageMsg); !ok {
		t.Errorf("expected ChangeLanguageMsg, got %T", cmd())
	}
}

func TestSummaryScreen_Quit(t *testing.T) {
	s := New(testState(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected command on q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestSummaryScreen_History(t *testing.T) {
	s := New(testState(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected command on h")
	}
	if _, ok := cmd().(screen.ShowHistoryMsg); !ok {
		t.Errorf("expected ShowHistoryMsg, got %T", cmd())
	}
}
