package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/lessons"
	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/speech"
	"github.com/abhisek/lingocalm/internal/store"
)

// Messages shown to the user.
const (
	msgLoading      = "Breathe in..."
	msgGenerateFail = "We couldn't generate the lesson right now. Please check your connection."
)

// ErrWrongMode is returned when an action does not apply to the current
// screen, e.g. completing a word on the summary screen.
var ErrWrongMode = errors.New("action not available in this view")

// Deps are the collaborators a Controller works with.
type Deps struct {
	Progress store.ProgressRepo
	History  store.HistoryRepo
	Lessons  lessons.Source
	Speaker  speech.Speaker
	Engine   *progress.Engine
	Logger   logrus.FieldLogger
}

// Snapshot is a consistent view of the controller.
type Snapshot struct {
	User        auth.UserID
	State       progress.State
	Mode        progress.ViewMode
	ActiveIndex int

	// Message is shown while loading or generating, or after a failure.
	Message string
}

// CurrentWord returns the word at the active index in lesson mode.
func (s Snapshot) CurrentWord() (progress.VocabularyWord, bool) {
	if s.Mode != progress.ModeLesson || s.State.CurrentLesson == nil {
		return progress.VocabularyWord{}, false
	}
	word, err := lo.Nth(s.State.CurrentLesson.Words, s.ActiveIndex)
	return word, err == nil
}

// Controller runs one user's session: it loads progress, asks the engine
// what to show, fetches lessons and persists every change. It is safe for
// concurrent use; lesson fetches run without holding the lock.
type Controller struct {
	deps Deps

	mu      sync.Mutex
	user    auth.UserID
	state   progress.State
	mode    progress.ViewMode
	index   int
	message string

	// epoch changes whenever the user does, so results of a fetch started
	// for a previous user are dropped.
	epoch int
}

// NewController creates a controller with no user. Call SetUser or Watch
// before Load.
func NewController(deps Deps) *Controller {
	if deps.Speaker == nil {
		deps.Speaker = speech.NopSpeaker{}
	}
	if deps.Engine == nil {
		deps.Engine = progress.New()
	}
	return &Controller{
		deps:    deps,
		state:   progress.DefaultState(),
		mode:    progress.ModeLoading,
		message: msgLoading,
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		User:        c.user,
		State:       c.state.Clone(),
		Mode:        c.mode,
		ActiveIndex: c.index,
		Message:     c.message,
	}
}

// SetUser switches the session to id and resets to the loading view. An
// empty id signs the session out.
func (c *Controller) SetUser(id auth.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = id
	c.state = progress.DefaultState()
	c.mode = progress.ModeLoading
	c.index = 0
	c.message = msgLoading
	c.epoch++
}

// Identity is the part of the auth service the controller listens to.
type Identity interface {
	Subscribe(l auth.Listener) (unsubscribe func())
}

// Watch follows identity changes: a sign-in loads that user's progress and
// a sign-out returns to the loading view. onChange, when set, is called
// after every reload.
func (c *Controller) Watch(ctx context.Context, id Identity, onChange func(Snapshot)) (unsubscribe func()) {
	return id.Subscribe(func(user auth.UserID, signedIn bool) {
		if !signedIn {
			c.SetUser("")
			if onChange != nil {
				onChange(c.Snapshot())
			}
			return
		}

		c.SetUser(user)
		snap, err := c.Load(ctx)
		if err != nil {
			c.logger().WithError(err).Warn("reload after sign-in failed")
		}
		if onChange != nil {
			onChange(snap)
		}
	})
}

// Load reads the user's progress, rolls it over if a day has passed and
// decides the view. When a lesson is needed the mode becomes generating
// and the caller should call Generate.
func (c *Controller) Load(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	user, epoch := c.user, c.epoch
	c.mu.Unlock()
	if user == "" {
		return c.Snapshot(), auth.ErrNotSignedIn
	}

	stored, err := c.deps.Progress.Load(ctx, string(user))
	if err != nil {
		c.logger().WithError(err).WithField("user", user).Warn("load progress failed")
		stored = progress.DefaultState()
	}

	state := c.deps.Engine.RolloverIfNewDay(stored)
	if rolledOver(stored, state) {
		c.save(ctx, user, state)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return c.snapshotLocked(), nil
	}

	c.state = state
	c.message = ""
	decision := c.deps.Engine.DecideView(state)
	c.mode = decision.Mode
	c.index = decision.ActiveIndex
	if decision.NeedsLesson {
		c.message = generatingMessage(*state.Language)
	}
	return c.snapshotLocked(), nil
}

// SelectLanguage fetches a lesson for lang and starts it. On failure the
// controller stays in generating with a message and the stored state is
// untouched; calling SelectLanguage again retries.
func (c *Controller) SelectLanguage(ctx context.Context, lang progress.Language) (Snapshot, error) {
	if !lang.Valid() {
		return c.Snapshot(), fmt.Errorf("unsupported language %q", lang)
	}

	c.mu.Lock()
	if c.user == "" {
		c.mu.Unlock()
		return c.Snapshot(), auth.ErrNotSignedIn
	}
	user, epoch := c.user, c.epoch
	c.mode = progress.ModeGenerating
	c.message = generatingMessage(lang)
	c.mu.Unlock()

	lesson, err := c.deps.Lessons.FetchLesson(ctx, lang)

	c.mu.Lock()
	if c.epoch != epoch {
		defer c.mu.Unlock()
		return c.snapshotLocked(), nil
	}
	if err != nil {
		c.message = msgGenerateFail
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger().WithError(err).WithFields(logrus.Fields{
			"user":     user,
			"language": lang,
		}).Warn("lesson fetch failed")
		return snap, err
	}

	c.state = c.deps.Engine.StartNewLesson(c.state, lang, lesson)
	c.mode = progress.ModeLesson
	c.index = 0
	c.message = ""
	state := c.state.Clone()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, user, state)
	return snap, nil
}

// Generate fetches today's lesson for the selected language.
func (c *Controller) Generate(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	lang := c.state.Language
	c.mu.Unlock()
	if lang == nil {
		return c.Snapshot(), progress.ErrNoLesson
	}
	return c.SelectLanguage(ctx, *lang)
}

// CompleteWord marks the active word practiced. Finishing the last word
// records the lesson in the history and moves to the summary.
func (c *Controller) CompleteWord(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.mode != progress.ModeLesson {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrWrongMode
	}

	next, err := progress.AdvanceLesson(c.state, c.index)
	if err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}

	finished := next.CompletedToday && !c.state.CompletedToday
	c.state = next
	if finished {
		c.mode = progress.ModeSummary
	} else {
		c.index = progress.ActiveIndex(*next.CurrentLesson)
	}

	user := c.user
	state := next.Clone()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, user, state)
	if finished {
		c.recordHistory(ctx, user, state)
	}
	return snap, nil
}

// ChangeLanguage returns to the language menu from a lesson, the summary
// or a failed fetch. The current lesson is only replaced once a new
// language is picked.
func (c *Controller) ChangeLanguage() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	failed := c.mode == progress.ModeGenerating && c.message == msgGenerateFail
	if c.mode != progress.ModeLesson && c.mode != progress.ModeSummary && !failed {
		return c.snapshotLocked(), ErrWrongMode
	}
	c.mode = progress.ModeOnboarding
	c.message = ""
	return c.snapshotLocked(), nil
}

// Failed reports whether the last lesson fetch failed.
func (s Snapshot) Failed() bool {
	return s.Mode == progress.ModeGenerating && s.Message == msgGenerateFail
}

// SpeakCurrent pronounces the active word.
func (c *Controller) SpeakCurrent() bool {
	snap := c.Snapshot()
	word, ok := snap.CurrentWord()
	if !ok || snap.State.Language == nil {
		return false
	}
	c.deps.Speaker.Speak(word.TargetWord, snap.State.Language.Locale())
	return true
}

// Tick re-checks the day boundary. It reports whether a rollover happened,
// in which case the view has been re-decided.
func (c *Controller) Tick(ctx context.Context) (Snapshot, bool) {
	c.mu.Lock()
	if c.user == "" || c.state.CurrentLesson == nil || c.mode == progress.ModeGenerating {
		defer c.mu.Unlock()
		return c.snapshotLocked(), false
	}
	next := c.deps.Engine.RolloverIfNewDay(c.state)
	if !rolledOver(c.state, next) {
		defer c.mu.Unlock()
		return c.snapshotLocked(), false
	}

	c.state = next
	decision := c.deps.Engine.DecideView(next)
	c.mode = decision.Mode
	c.index = decision.ActiveIndex
	c.message = ""
	if decision.NeedsLesson {
		c.message = generatingMessage(*next.Language)
	}
	user := c.user
	state := next.Clone()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, user, state)
	return snap, true
}

func (c *Controller) save(ctx context.Context, user auth.UserID, s progress.State) {
	if err := c.deps.Progress.Save(ctx, string(user), s); err != nil {
		c.logger().WithError(err).WithField("user", user).Warn("save progress failed")
	}
}

func (c *Controller) recordHistory(ctx context.Context, user auth.UserID, s progress.State) {
	if c.deps.History == nil || s.CurrentLesson == nil || s.Language == nil {
		return
	}
	rec := store.LessonRecord{
		LessonID: s.CurrentLesson.ID,
		Language: *s.Language,
		Words: lo.Map(s.CurrentLesson.Words, func(w progress.VocabularyWord, _ int) string {
			return w.TargetWord
		}),
		Streak:      s.Streak,
		CompletedAt: c.deps.Engine.Now(),
	}
	if err := c.deps.History.AppendLesson(ctx, string(user), rec); err != nil {
		c.logger().WithError(err).WithFields(logrus.Fields{
			"user":   user,
			"lesson": rec.LessonID,
		}).Warn("lesson history not recorded")
	}
}

func (c *Controller) logger() logrus.FieldLogger {
	if c.deps.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.deps.Logger
}

func rolledOver(before, after progress.State) bool {
	return before.CurrentLesson != nil && after.CurrentLesson == nil
}

func generatingMessage(lang progress.Language) string {
	return fmt.Sprintf("Crafting a calm %s lesson for you...", lang)
}
