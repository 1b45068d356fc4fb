package lesson

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
)

func testLesson() progress.DailyLesson {
	return progress.DailyLesson{
		ID: "2026-01-29",
		Words: []progress.VocabularyWord{
			{TargetWord: "Hola", NativeMeaning: "Hello", PronunciationGuide: "OH-lah"},
			{TargetWord: "Gracias", NativeMeaning: "Thank you", PronunciationGuide: "GRAH-syahs",
				ExampleSentenceTarget: "Muchas gracias.", ExampleSentenceNative: "Thank you very much."},
			{TargetWord: "Paz", NativeMeaning: "Peace", PronunciationGuide: "pahs"},
		},
	}
}

func TestLessonScreen_ShowsActiveWord(t *testing.T) {
	s := New(testLesson(), 1, progress.Spanish)
	view := s.View(80, 30)
	for _, want := range []string{"Gracias", "Thank you", "/GRAH-syahs/", "Muchas gracias.", "2 / 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Hola") {
		t.Error("view should only show the active word")
	}
}

func TestLessonScreen_Keys(t *testing.T) {
	tests := []struct {
		key  tea.KeyPressMsg
		want tea.Msg
	}{
		{tea.KeyPressMsg{Code: tea.KeyEnter}, screen.CompleteWordMsg{}},
		{tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, screen.CompleteWordMsg{}},
		{tea.KeyPressMsg{Code: 's', Text: "s"}, screen.SpeakWordMsg{}},
		{tea.KeyPressMsg{Code: 'l', Text: "l"}, screen.ChangeLanguageMsg{}},
	}
	for _, tt := range tests {
		s := New(testLesson(), 0, progress.Spanish)
		_, cmd := s.Update(tt.key)
		if cmd == nil {
			t.Errorf("%s: expected a command", tt.key.String())
			continue
		}
		if got := cmd(); got != tt.want {
			t.Errorf("%s: got %T, want %T", tt.key.String(), got, tt.want)
		}
	}
}

func TestLessonScreen_IgnoresOtherKeys(t *testing.T) {
	s := New(testLesson(), 0, progress.Spanish)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("unexpected command for unbound key")
	}
}
