package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingocalm/internal/progress"
)

// fallbackRepo keeps a session usable when the backend fails.
type fallbackRepo struct {
	inner  ProgressRepo
	logger logrus.FieldLogger
}

// WithFallback wraps inner so that persistence failures never reach the
// caller. A failed load yields the default state; a failed save is dropped.
// Both are logged as warnings.
func WithFallback(inner ProgressRepo, logger logrus.FieldLogger) ProgressRepo {
	return &fallbackRepo{inner: inner, logger: logger}
}

func (r *fallbackRepo) Load(ctx context.Context, userID string) (progress.State, error) {
	st, err := r.inner.Load(ctx, userID)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"user": userID,
			"op":   "load",
		}).Warn("progress unavailable, starting from an empty state")
		return progress.DefaultState(), nil
	}
	return st, nil
}

func (r *fallbackRepo) Save(ctx context.Context, userID string, s progress.State) error {
	if err := r.inner.Save(ctx, userID, s); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"user": userID,
			"op":   "save",
		}).Warn("progress not saved, continuing with in-memory state")
	}
	return nil
}
