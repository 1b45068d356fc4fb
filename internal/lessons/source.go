package lessons

import (
	"context"
	"fmt"

	"github.com/abhisek/lingocalm/internal/progress"
)

// Source supplies the words for a day's lesson.
type Source interface {
	// FetchLesson returns a lesson for lang keyed by today's date with
	// every word unpracticed.
	FetchLesson(ctx context.Context, lang progress.Language) (progress.DailyLesson, error)
}

// GenerationError reports a lesson that could not be produced.
type GenerationError struct {
	Language progress.Language
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s lesson: %v", e.Language, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
