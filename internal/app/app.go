package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/router"
	"github.com/abhisek/lingocalm/internal/screen"
	"github.com/abhisek/lingocalm/internal/screens/history"
	"github.com/abhisek/lingocalm/internal/screens/lesson"
	"github.com/abhisek/lingocalm/internal/screens/onboarding"
	"github.com/abhisek/lingocalm/internal/screens/signin"
	"github.com/abhisek/lingocalm/internal/screens/summary"
	"github.com/abhisek/lingocalm/internal/screens/waiting"
	"github.com/abhisek/lingocalm/internal/store"
	"github.com/abhisek/lingocalm/internal/ui/layout"
)

// DefaultRolloverInterval is how often the open TUI re-checks the day.
const DefaultRolloverInterval = time.Minute

// Authenticator is what the TUI needs from the auth service.
type Authenticator interface {
	SignIn(ctx context.Context, c auth.Credentials) (auth.UserID, error)
	SignUp(ctx context.Context, c auth.Credentials) (auth.UserID, error)
	CurrentUser() (auth.UserID, bool)
}

// Options wires the TUI.
type Options struct {
	Controller *Controller
	Auth       Authenticator
	History    store.HistoryRepo

	// RolloverInterval defaults to DefaultRolloverInterval.
	RolloverInterval time.Duration
}

type snapshotMsg struct {
	snap Snapshot
	err  error

	// fetch starts lesson generation when the snapshot asks for one.
	fetch bool
}

type statsMsg struct {
	stats *store.Stats
}

type rolloverTickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	ctrl    *Controller
	auth    Authenticator
	history store.HistoryRepo
	every   time.Duration

	router  *router.Router
	snap    Snapshot
	stats   *store.Stats
	pending progress.Language

	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	every := opts.RolloverInterval
	if every <= 0 {
		every = DefaultRolloverInterval
	}
	m := AppModel{
		ctx:     ctx,
		ctrl:    opts.Controller,
		auth:    opts.Auth,
		history: opts.History,
		every:   every,
		snap:    opts.Controller.Snapshot(),
	}
	m.router = router.New(m.screenFor(m.snap))
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.tick()}
	if m.snap.User != "" {
		cmds = append(cmds, m.loadCmd())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case snapshotMsg:
		return m.applySnapshot(msg)

	case statsMsg:
		m.stats = msg.stats
		if m.snap.Mode == progress.ModeSummary {
			return m, m.router.Reset(m.screenFor(m.snap))
		}
		return m, nil

	case rolloverTickMsg:
		return m, tea.Batch(m.rolloverCmd(), m.tick())

	case screen.SelectLanguageMsg:
		m.pending = msg.Language
		return m, m.selectCmd(msg.Language)

	case screen.RetryMsg:
		if m.pending != "" {
			return m, m.selectCmd(m.pending)
		}
		return m, m.generateCmd()

	case screen.CompleteWordMsg:
		return m, m.completeCmd()

	case screen.SpeakWordMsg:
		m.ctrl.SpeakCurrent()
		return m, nil

	case screen.ChangeLanguageMsg:
		snap, err := m.ctrl.ChangeLanguage()
		if err != nil {
			return m, nil
		}
		m.snap = snap
		return m, m.router.Reset(m.screenFor(snap))

	case screen.AuthenticateMsg:
		return m, m.authenticateCmd(msg)

	case screen.ShowHistoryMsg:
		if m.history == nil || m.snap.User == "" {
			return m, nil
		}
		return m, m.router.Push(history.New(m.history, string(m.snap.User)))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	m.snap = msg.snap
	cmds := []tea.Cmd{m.router.Reset(m.screenFor(msg.snap))}

	switch {
	case msg.fetch && msg.snap.Mode == progress.ModeGenerating && !msg.snap.Failed():
		cmds = append(cmds, m.generateCmd())
	case msg.snap.Mode == progress.ModeSummary:
		cmds = append(cmds, m.statsCmd())
	}
	return m, tea.Batch(cmds...)
}

// screenFor picks the screen that renders snap.
func (m AppModel) screenFor(snap Snapshot) screen.Screen {
	if snap.User == "" && m.auth != nil {
		return signin.New()
	}
	switch snap.Mode {
	case progress.ModeOnboarding:
		return onboarding.New(snap.State.Language)
	case progress.ModeGenerating:
		return waiting.New(snap.Message, snap.Failed())
	case progress.ModeLesson:
		if snap.State.CurrentLesson != nil && snap.State.Language != nil {
			return lesson.New(*snap.State.CurrentLesson, snap.ActiveIndex, *snap.State.Language)
		}
	case progress.ModeSummary:
		return summary.New(snap.State, m.stats)
	}
	msg := snap.Message
	if msg == "" {
		msg = msgLoading
	}
	return waiting.New(msg, false)
}

func (m AppModel) tick() tea.Cmd {
	return tea.Tick(m.every, func(t time.Time) tea.Msg {
		return rolloverTickMsg(t)
	})
}

func (m AppModel) loadCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		snap, err := ctrl.Load(ctx)
		return snapshotMsg{snap: snap, err: err, fetch: true}
	}
}

func (m AppModel) selectCmd(lang progress.Language) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	show := waiting.New(generatingMessage(lang), false)
	return tea.Batch(m.router.Reset(show), func() tea.Msg {
		snap, err := ctrl.SelectLanguage(ctx, lang)
		return snapshotMsg{snap: snap, err: err}
	})
}

func (m AppModel) generateCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		snap, err := ctrl.Generate(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m AppModel) completeCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		snap, err := ctrl.CompleteWord(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m AppModel) rolloverCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		snap, changed := ctrl.Tick(ctx)
		if !changed {
			return nil
		}
		return snapshotMsg{snap: snap, fetch: true}
	}
}

func (m AppModel) statsCmd() tea.Cmd {
	history, ctx, user := m.history, m.ctx, m.snap.User
	if history == nil || user == "" {
		return nil
	}
	return func() tea.Msg {
		stats, err := history.Stats(ctx, string(user))
		if err != nil {
			return nil
		}
		return statsMsg{stats: &stats}
	}
}

func (m AppModel) authenticateCmd(msg screen.AuthenticateMsg) tea.Cmd {
	a, ctrl, ctx := m.auth, m.ctrl, m.ctx
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		var (
			id  auth.UserID
			err error
		)
		if msg.SignUp {
			id, err = a.SignUp(ctx, msg.Credentials)
		} else {
			id, err = a.SignIn(ctx, msg.Credentials)
		}
		if err != nil {
			return screen.AuthFailedMsg{Err: err}
		}

		// A watching controller has already reloaded for id.
		snap := ctrl.Snapshot()
		if snap.User != id || snap.Mode == progress.ModeLoading {
			ctrl.SetUser(id)
			snap, err = ctrl.Load(ctx)
			if err != nil && !errors.Is(err, auth.ErrNotSignedIn) {
				return screen.AuthFailedMsg{Err: err}
			}
		}
		return snapshotMsg{snap: snap, fetch: true}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	info := layout.HeaderInfo{Streak: m.snap.State.Streak}
	if m.snap.State.Language != nil {
		info.Language = m.snap.State.Language.String()
	}
	header := layout.RenderHeader(title, info, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
