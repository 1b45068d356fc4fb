package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DateKeyLayout is the layout of lesson identifiers.
const DateKeyLayout = "2006-01-02"

// DateKey returns the lesson identifier for the calendar day containing t.
// Days are UTC days.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// Engine applies the lesson progression rules. It performs no I/O; the only
// outside input is the clock, which is injectable for tests.
type Engine struct {
	now func() time.Time
}

// New returns an Engine that reads the wall clock.
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock returns an Engine that reads time from now.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// TodayKey returns today's lesson identifier.
func (e *Engine) TodayKey() string {
	return DateKey(e.now())
}

// RolloverIfNewDay clears a lesson created on a previous day. Streak,
// language and last visit carry over; missed days are not penalized.
func (e *Engine) RolloverIfNewDay(s State) State {
	if s.CurrentLesson == nil || s.CurrentLesson.ID == e.TodayKey() {
		return s
	}
	next := s.Clone()
	next.CurrentLesson = nil
	next.CompletedToday = false
	return next
}

// DecideView picks the screen for s. Call it after RolloverIfNewDay.
func (e *Engine) DecideView(s State) Decision {
	switch {
	case s.Language == nil:
		return Decision{Mode: ModeOnboarding}
	case s.CurrentLesson == nil:
		return Decision{Mode: ModeGenerating, NeedsLesson: true}
	case s.CompletedToday:
		return Decision{Mode: ModeSummary}
	default:
		return Decision{Mode: ModeLesson, ActiveIndex: ActiveIndex(*s.CurrentLesson)}
	}
}

// StartNewLesson installs a freshly fetched lesson for lang. Any lesson in
// progress is discarded, including one for a different language.
func (e *Engine) StartNewLesson(s State, lang Language, lesson DailyLesson) State {
	next := s.Clone()
	l := lang
	installed := lesson.clone()
	now := e.now().UTC()

	next.Language = &l
	next.CurrentLesson = &installed
	next.CompletedToday = false
	next.LastVisit = &now
	return next
}

// ActiveIndex returns the position of the first unpracticed word, or 0 when
// every word is already practiced.
func ActiveIndex(l DailyLesson) int {
	_, idx, ok := lo.FindIndexOf(l.Words, func(w VocabularyWord) bool {
		return !w.Practiced
	})
	if !ok {
		return 0
	}
	return idx
}

// IsFullyPracticed reports whether every word in l has been practiced.
// An empty lesson is never fully practiced.
func IsFullyPracticed(l DailyLesson) bool {
	return len(l.Words) > 0 && lo.EveryBy(l.Words, func(w VocabularyWord) bool {
		return w.Practiced
	})
}

// MarkWordPracticed returns a copy of l with the word at index practiced.
// Marking an already practiced word is a no-op.
func MarkWordPracticed(l DailyLesson, index int) (DailyLesson, error) {
	if index < 0 || index >= len(l.Words) {
		return DailyLesson{}, &IndexError{Index: index, Length: len(l.Words)}
	}
	next := l.clone()
	next.Words[index].Practiced = true
	return next, nil
}

// AdvanceLesson records practice of the word at completedIndex. The streak
// grows by one at the moment the lesson becomes fully practiced, and only
// then; advancing a lesson that is already complete changes nothing else.
// Words may be practiced in any order: completion follows the last
// unpracticed word, not the last index.
func AdvanceLesson(s State, completedIndex int) (State, error) {
	if s.CurrentLesson == nil {
		return s, ErrNoLesson
	}
	lesson, err := MarkWordPracticed(*s.CurrentLesson, completedIndex)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	next.CurrentLesson = &lesson
	if !s.CompletedToday && IsFullyPracticed(lesson) {
		next.CurrentLesson.Completed = true
		next.CompletedToday = true
		next.Streak = s.Streak + 1
	}
	return next, nil
}

// ValidateLesson checks the shape of a lesson supplied by a lesson source.
func ValidateLesson(l DailyLesson) error {
	if _, err := time.Parse(DateKeyLayout, l.ID); err != nil {
		return fmt.Errorf("%w: id %q is not a date key", ErrInvalidLesson, l.ID)
	}
	if len(l.Words) == 0 {
		return fmt.Errorf("%w: no words", ErrInvalidLesson)
	}
	for i, w := range l.Words {
		if strings.TrimSpace(w.TargetWord) == "" || strings.TrimSpace(w.NativeMeaning) == "" {
			return fmt.Errorf("%w: word %d is missing its term or meaning", ErrInvalidLesson, i)
		}
	}
	return nil
}
