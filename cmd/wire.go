package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/app"
	"github.com/abhisek/lingocalm/internal/auth"
	"github.com/abhisek/lingocalm/internal/config"
	"github.com/abhisek/lingocalm/internal/lessons"
	"github.com/abhisek/lingocalm/internal/llm"
	"github.com/abhisek/lingocalm/internal/logging"
	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/speech"
	"github.com/abhisek/lingocalm/internal/store"
)

// env holds the collaborators shared by all commands.
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	store  *store.Store
	auth   *auth.Service
	engine *progress.Engine

	closers []func() error
}

// setup loads config, builds the logger, opens the store and restores the
// saved session. tui routes logs to a file so they don't draw over the
// screen.
func setup(cmd *cobra.Command, tui bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Storage.Backend = b
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if tui && logCfg.File == "" {
		logCfg.File = filepath.Join(config.DataDir(), "lingocalm.log")
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, engine: progress.New(), closers: []func() error{closeLog}}

	path := cfg.Storage.Path
	if cfg.Storage.Backend != store.BackendRemote {
		if path == "" {
			path, err = store.DefaultDBPath()
		} else {
			err = store.EnsureDir(path)
		}
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	st, err := store.OpenBackend(ctx, cfg.Storage.Backend, path, cfg.Storage.URL)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st.Close)

	e.auth, err = auth.NewService(st.UserRepo(), auth.Config{
		Secret:     cfg.Auth.Secret,
		SessionTTL: cfg.Auth.SessionTTL,
		TokenPath:  cfg.Auth.TokenPath,
	}, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.auth.Restore(ctx)

	return e, nil
}

// Close releases everything setup opened, last first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && e.logger != nil {
			e.logger.WithError(err).Debug("close")
		}
	}
}

// user returns the signed-in user or a hint to sign in.
func (e *env) user() (auth.UserID, error) {
	id, ok := e.auth.CurrentUser()
	if !ok {
		return "", fmt.Errorf("%w: run `lingocalm signin` or `lingocalm signup` first", auth.ErrNotSignedIn)
	}
	return id, nil
}

// llmConfig resolves the lesson generator from config, then from the
// vendors' API key variables. ok is false when none is configured.
func (e *env) llmConfig() (llm.Config, bool) {
	c := e.cfg.LLM
	if c.Provider != "" {
		cfg := llm.DefaultConfig()
		if found, ok := llm.DiscoverConfig(); ok && found.Provider == c.Provider {
			cfg = found
		}
		cfg.Provider = c.Provider
		return cfg.WithAPIKey(c.APIKey, c.Model), true
	}
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		return llm.Config{}, false
	}
	return cfg.WithAPIKey("", c.Model), true
}

// lessonSource builds the language model lesson source with the word
// bank as fallback, or the bank alone when no model is configured.
func (e *env) lessonSource(ctx context.Context) lessons.Source {
	bank := lessons.NewBank()
	count := e.cfg.Lesson.WordCount
	bankSource := lessons.BankSource{Bank: bank, Engine: e.engine, Count: count}

	llmCfg, ok := e.llmConfig()
	if !ok {
		e.logger.Info("no language model configured, lessons come from the built-in word bank")
		return bankSource
	}

	provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.logger)
	if err != nil {
		e.logger.WithError(err).Warn("language model unavailable, using the built-in word bank")
		return bankSource
	}

	lessonCfg := lessons.DefaultConfig()
	lessonCfg.WordCount = count
	return lessons.WithFallback(lessons.NewService(provider, lessonCfg, e.engine), bank, e.engine, e.logger)
}

// speaker returns the TTS speaker, or nil when audio is disabled.
func (e *env) speaker() *speech.TTSSpeaker {
	if !e.cfg.Speech.Enabled {
		return nil
	}
	return speech.NewTTSSpeaker(speech.TTSConfig{
		CacheDir: e.cfg.Speech.CacheDir,
		Player:   e.cfg.Speech.Player,
	}, e.logger)
}

// controller builds a controller for the signed-in user.
func (e *env) controller(ctx context.Context) *app.Controller {
	var spk speech.Speaker = speech.NopSpeaker{}
	if tts := e.speaker(); tts != nil {
		spk = tts
	}
	ctrl := app.NewController(app.Deps{
		Progress: store.WithFallback(e.store.ProgressRepo(), e.logger),
		History:  e.store.HistoryRepo(),
		Lessons:  e.lessonSource(ctx),
		Speaker:  spk,
		Engine:   e.engine,
		Logger:   e.logger,
	})
	if id, ok := e.auth.CurrentUser(); ok {
		ctrl.SetUser(id)
	}
	return ctrl
}

// withEnv runs fn with a fully set up env and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, e)
}

var errNoLanguage = errors.New("no language selected yet: run `lingocalm language <name>`")
