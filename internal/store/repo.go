package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lingocalm/internal/progress"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// ProgressRepo persists one progress.State per user.
type ProgressRepo interface {
	// Load returns the user's state. A user without a record gets the
	// default state, and the record is created.
	Load(ctx context.Context, userID string) (progress.State, error)

	// Save replaces the user's state. The last writer wins.
	Save(ctx context.Context, userID string, s progress.State) error
}

// LessonRecord is a completed lesson kept for the history view.
type LessonRecord struct {
	LessonID    string
	Language    progress.Language
	Words       []string
	Streak      int
	CompletedAt time.Time
}

// Stats summarizes a user's learning.
type Stats struct {
	TotalLessons      int
	TotalWords        int
	CurrentStreak     int
	PreferredLanguage *progress.Language
	LastCompleted     *time.Time
}

// HistoryRepo records completed lessons.
type HistoryRepo interface {
	// AppendLesson records a completed lesson. Each call adds a record, so a
	// day holds one record per lesson finished on it.
	AppendLesson(ctx context.Context, userID string, rec LessonRecord) error

	// History returns the most recent records first. limit <= 0 means all.
	History(ctx context.Context, userID string, limit int) ([]LessonRecord, error)

	// Stats aggregates the history with the current progress state.
	Stats(ctx context.Context, userID string) (Stats, error)
}

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepo stores accounts.
type UserRepo interface {
	// CreateUser stores u. ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, u User) error

	// UserByEmail returns ErrNotFound for unknown emails.
	UserByEmail(ctx context.Context, email string) (*User, error)

	// UserByID returns ErrNotFound for unknown IDs.
	UserByID(ctx context.Context, id string) (*User, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a recorded LLM call.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // "lesson" also matches "lesson:<language>"
}

// LLMUsage aggregates LLM events sharing a key (purpose or model).
type LLMUsage struct {
	Key          string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo stores LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns ErrNotFound for unknown IDs.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose groups usage by purpose, busiest first.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel groups usage by model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
