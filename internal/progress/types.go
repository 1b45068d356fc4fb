package progress

import (
	"fmt"
	"strings"
	"time"
)

// Language is a supported target language.
type Language string

const (
	Spanish  Language = "Spanish"
	French   Language = "French"
	Italian  Language = "Italian"
	German   Language = "German"
	Japanese Language = "Japanese"
)

// languageLocales maps each language to the locale used for speech.
var languageLocales = map[Language]string{
	Spanish:  "es-ES",
	French:   "fr-FR",
	Italian:  "it-IT",
	German:   "de-DE",
	Japanese: "ja-JP",
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{Spanish, French, Italian, German, Japanese}
}

// ParseLanguage resolves a language name, ignoring case.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages() {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Locale returns the BCP 47 locale used to pronounce words in l.
func (l Language) Locale() string {
	return languageLocales[l]
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageLocales[l]
	return ok
}

func (l Language) String() string {
	return string(l)
}

// VocabularyWord is one lesson item.
type VocabularyWord struct {
	TargetWord            string `json:"targetWord"`
	NativeMeaning         string `json:"nativeMeaning"`
	PronunciationGuide    string `json:"pronunciationGuide"`
	ExampleSentenceTarget string `json:"exampleSentenceTarget"`
	ExampleSentenceNative string `json:"exampleSentenceNative"`
	Practiced             bool   `json:"practiced"`
}

// DailyLesson is one day's fixed sequence of words. ID is the date key
// (YYYY-MM-DD) the lesson was created for.
type DailyLesson struct {
	ID        string           `json:"id"`
	Words     []VocabularyWord `json:"words"`
	Completed bool             `json:"completed"`
}

// clone returns a deep copy so callers never share the word slice.
func (l DailyLesson) clone() DailyLesson {
	words := make([]VocabularyWord, len(l.Words))
	copy(words, l.Words)
	l.Words = words
	return l
}

// State is a user's learning state and the unit of persistence.
// Nil pointers encode unset values and serialize as JSON null.
type State struct {
	Language       *Language    `json:"language"`
	CurrentLesson  *DailyLesson `json:"currentLesson"`
	CompletedToday bool         `json:"completedToday"`
	Streak         int          `json:"streak"`
	LastVisit      *time.Time   `json:"lastVisit"`
}

// DefaultState returns the state of a user who has never practiced.
func DefaultState() State {
	return State{}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	if s.Language != nil {
		l := *s.Language
		s.Language = &l
	}
	if s.CurrentLesson != nil {
		l := s.CurrentLesson.clone()
		s.CurrentLesson = &l
	}
	if s.LastVisit != nil {
		t := *s.LastVisit
		s.LastVisit = &t
	}
	return s
}

// ViewMode is the screen the orchestration layer should show.
type ViewMode string

const (
	ModeLoading    ViewMode = "loading"
	ModeOnboarding ViewMode = "onboarding"
	ModeGenerating ViewMode = "generating"
	ModeLesson     ViewMode = "lesson"
	ModeSummary    ViewMode = "summary"
)

// Decision is the outcome of DecideView.
type Decision struct {
	Mode ViewMode

	// ActiveIndex is the word to practice next. Only meaningful in ModeLesson.
	ActiveIndex int

	// NeedsLesson is set when a language is selected but no lesson exists
	// for today; the caller must fetch one.
	NeedsLesson bool
}
