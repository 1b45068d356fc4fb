package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/screens/lesson"
	"github.com/abhisek/lingocalm/internal/screens/onboarding"
	"github.com/abhisek/lingocalm/internal/screens/signin"
	"github.com/abhisek/lingocalm/internal/screens/summary"
	"github.com/abhisek/lingocalm/internal/screens/waiting"
)

// collect runs cmd and returns the messages it produces. Commands that do
// not return promptly, such as timers, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds app messages back into the model until it goes quiet.
func settle(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	queue := collect(cmd)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("model did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case snapshotMsg, statsMsg, screen.SelectLanguageMsg, screen.CompleteWordMsg,
			screen.ChangeLanguageMsg, screen.RetryMsg, screen.AuthenticateMsg, screen.AuthFailedMsg:
		default:
			continue
		}
		next, cmd := m.Update(msg)
		m = next.(AppModel)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

func press(t *testing.T, m AppModel, key tea.KeyPressMsg) AppModel {
	t.Helper()
	next, cmd := m.Update(key)
	return settle(t, next.(AppModel), cmd)
}

func TestAppModel_LessonFlow(t *testing.T) {
	h := newHarness(t)
	m := newAppModel(context.Background(), Options{
		Controller:       h.ctrl,
		History:          h.store.HistoryRepo(),
		RolloverInterval: time.Hour,
	})
	if _, ok := m.router.Active().(*waiting.WaitingScreen); !ok {
		t.Fatalf("initial screen = %T, want waiting", m.router.Active())
	}

	m = settle(t, m, m.Init())
	if _, ok := m.router.Active().(*onboarding.OnboardingScreen); !ok {
		t.Fatalf("after load screen = %T, want onboarding", m.router.Active())
	}

	m = press(t, m, tea.KeyPressMsg{Code: '2', Text: "2"})
	if _, ok := m.router.Active().(*lesson.LessonScreen); !ok {
		t.Fatalf("after picking French screen = %T, want lesson", m.router.Active())
	}
	if m.snap.State.Language == nil || *m.snap.State.Language != progress.French {
		t.Fatalf("language = %v, want French", m.snap.State.Language)
	}

	for i := 0; i < 5; i++ {
		m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	if _, ok := m.router.Active().(*summary.SummaryScreen); !ok {
		t.Fatalf("after five words screen = %T, want summary", m.router.Active())
	}
	if m.snap.State.Streak != 1 {
		t.Errorf("streak = %d, want 1", m.snap.State.Streak)
	}
	if m.stats == nil || m.stats.TotalLessons != 1 {
		t.Errorf("stats = %+v, want one lesson", m.stats)
	}

	m = press(t, m, tea.KeyPressMsg{Code: 'l', Text: "l"})
	if _, ok := m.router.Active().(*onboarding.OnboardingScreen); !ok {
		t.Fatalf("after change language screen = %T, want onboarding", m.router.Active())
	}
}

func TestAppModel_GenerationFailureAndRetry(t *testing.T) {
	h := newHarness(t)
	h.source.failing = true
	m := newAppModel(context.Background(), Options{Controller: h.ctrl, RolloverInterval: time.Hour})
	m = settle(t, m, m.Init())

	m = press(t, m, tea.KeyPressMsg{Code: '1', Text: "1"})
	if _, ok := m.router.Active().(*waiting.WaitingScreen); !ok {
		t.Fatalf("screen = %T, want waiting", m.router.Active())
	}
	if !m.snap.Failed() {
		t.Fatal("expected a failed fetch")
	}

	h.source.failing = false
	m = press(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})
	if _, ok := m.router.Active().(*lesson.LessonScreen); !ok {
		t.Fatalf("after retry screen = %T, want lesson", m.router.Active())
	}
	if *m.snap.State.Language != progress.Spanish {
		t.Errorf("language = %s, want Spanish", *m.snap.State.Language)
	}
}

func TestAppModel_RolloverTickFetchesNewLesson(t *testing.T) {
	h := newHarness(t)
	m := newAppModel(context.Background(), Options{Controller: h.ctrl, RolloverInterval: time.Hour})
	m = settle(t, m, m.Init())
	m = press(t, m, tea.KeyPressMsg{Code: '1', Text: "1"})
	first := m.snap.State.CurrentLesson.ID

	h.clock.Set(time.Date(2026, 1, 30, 7, 0, 0, 0, time.UTC))
	next, cmd := m.Update(rolloverTickMsg(h.clock.Now()))
	m = settle(t, next.(AppModel), cmd)

	if _, ok := m.router.Active().(*lesson.LessonScreen); !ok {
		t.Fatalf("after rollover screen = %T, want lesson", m.router.Active())
	}
	if got := m.snap.State.CurrentLesson.ID; got == first || got != "2026-01-30" {
		t.Errorf("lesson id = %s, want 2026-01-30", got)
	}
}

type fakeAuth struct {
	user auth.UserID
	fail error
}

func (f *fakeAuth) SignIn(ctx context.Context, c auth.Credentials) (auth.UserID, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.user = "user-7"
	return f.user, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, c auth.Credentials) (auth.UserID, error) {
	return f.SignIn(ctx, c)
}

func (f *fakeAuth) CurrentUser() (auth.UserID, bool) {
	return f.user, f.user != ""
}

func TestAppModel_SignIn(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetUser("")
	a := &fakeAuth{fail: auth.ErrInvalidCredentials}

	m := newAppModel(context.Background(), Options{Controller: h.ctrl, Auth: a, RolloverInterval: time.Hour})
	if _, ok := m.router.Active().(*signin.SignInScreen); !ok {
		t.Fatalf("initial screen = %T, want sign-in", m.router.Active())
	}

	creds := auth.Credentials{Email: "ana@example.com", Password: "calm-words"}
	next, cmd := m.Update(screen.AuthenticateMsg{Credentials: creds})
	m = settle(t, next.(AppModel), cmd)
	if _, ok := m.router.Active().(*signin.SignInScreen); !ok {
		t.Fatalf("after failure screen = %T, want sign-in", m.router.Active())
	}

	a.fail = nil
	next, cmd = m.Update(screen.AuthenticateMsg{Credentials: creds})
	m = settle(t, next.(AppModel), cmd)
	if _, ok := m.router.Active().(*onboarding.OnboardingScreen); !ok {
		t.Fatalf("after sign-in screen = %T, want onboarding", m.router.Active())
	}
	if m.snap.User != "user-7" {
		t.Errorf("user = %q, want user-7", m.snap.User)
	}
}

func TestAppModel_Render(t *testing.T) {
	h := newHarness(t)
	m := newAppModel(context.Background(), Options{Controller: h.ctrl, RolloverInterval: time.Hour})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected a too-small message")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = settle(t, next.(AppModel), m.Init())
	m = press(t, m, tea.KeyPressMsg{Code: '3', Text: "3"})

	frame := m.render()
	for _, want := range []string{"LingoCalm", "Today's Session", "Italian", "0 days", "I've practiced this"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}
