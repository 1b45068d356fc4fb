package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a word index falls outside the
	// lesson's word sequence. It indicates a caller bug.
	ErrIndexOutOfRange = errors.New("word index out of range")

	// ErrNoLesson is returned when a lesson operation runs without a
	// current lesson.
	ErrNoLesson = errors.New("no current lesson")

	// ErrInvalidLesson is returned by ValidateLesson.
	ErrInvalidLesson = errors.New("invalid lesson")
)

// IndexError carries the offending index and the lesson length.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("word index %d out of range [0, %d)", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
