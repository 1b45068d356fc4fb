package lessons

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingocalm/internal/progress"
)

type fallbackSource struct {
	inner  Source
	bank   *Bank
	engine *progress.Engine
	logger logrus.FieldLogger
}

// WithFallback wraps src so that a failed generation yields the bank
// lesson for today instead of an error. Cancellation is returned as is.
func WithFallback(src Source, bank *Bank, engine *progress.Engine, logger logrus.FieldLogger) Source {
	return &fallbackSource{inner: src, bank: bank, engine: engine, logger: logger}
}

func (f *fallbackSource) FetchLesson(ctx context.Context, lang progress.Language) (progress.DailyLesson, error) {
	lesson, err := f.inner.FetchLesson(ctx, lang)
	if err == nil {
		return lesson, nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return progress.DailyLesson{}, err
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		return progress.DailyLesson{}, err
	}

	fallback := f.bank.Lesson(lang, f.engine.TodayKey())
	if len(fallback.Words) == 0 {
		return progress.DailyLesson{}, err
	}

	f.logger.WithError(err).WithFields(logrus.Fields{
		"language": lang,
		"lesson":   fallback.ID,
	}).Warn("lesson generation failed, using the built-in word bank")
	return fallback, nil
}
