package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/router"
	"github.com/abhisek/lingocalm/internal/store"
)

type stubHistory struct {
	records []store.LessonRecord
	err     error
	user    string
	limit   int
}

func (s *stubHistory) AppendLesson(context.Context, string, store.LessonRecord) error { return nil }

func (s *stubHistory) History(_ context.Context, userID string, limit int) ([]store.LessonRecord, error) {
	s.user, s.limit = userID, limit
	return s.records, s.err
}

func (s *stubHistory) Stats(context.Context, string) (store.Stats, error) {
	return store.Stats{}, nil
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestHistoryScreen_ListsRecords(t *testing.T) {
	repo := &stubHistory{records: []store.LessonRecord{
		{LessonID: "2026-01-30", Language: progress.Spanish, Words: []string{"sol", "mar"}, Streak: 2},
		{LessonID: "2026-01-29", Language: progress.Spanish, Words: []string{"agua"}, Streak: 1},
	}}
	s := New(repo, "u1")
	load(t, s)

	if repo.user != "u1" || repo.limit != Limit {
		t.Errorf("History called with (%q, %d)", repo.user, repo.limit)
	}

	view := s.View(80, 24)
	for _, want := range []string{"2026-01-30", "2026-01-29", "streak 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "sol · mar") {
		t.Error("words shown before expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(80, 24), "sol · mar") {
		t.Error("expanded record should list its words")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	repo := &stubHistory{records: []store.LessonRecord{
		{LessonID: "2026-01-30"}, {LessonID: "2026-01-29"},
	}}
	s := New(repo, "u1")
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}

func TestHistoryScreen_EmptyAndError(t *testing.T) {
	s := New(&stubHistory{}, "u1")
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading text before Init completes")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No completed lessons") {
		t.Error("expected empty text")
	}

	s = New(&stubHistory{err: errors.New("boom")}, "u1")
	load(t, s)
	if !strings.Contains(s.View(80, 24), "boom") {
		t.Error("expected error text")
	}
}
