package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingocalm/internal/store"
)

// Config configures a Service.
type Config struct {
	// Secret signs session tokens.
	Secret string

	// SessionTTL is how long a session stays valid.
	SessionTTL time.Duration

	// TokenPath is where the session token is kept between runs. Empty
	// keeps the session in memory only.
	TokenPath string
}

// Listener is told about every identity change. signedIn is false after
// sign-out, in which case id is empty.
type Listener func(id UserID, signedIn bool)

// Service signs users up, in and out, and tracks the current identity.
type Service struct {
	users  store.UserRepo
	secret []byte
	ttl    time.Duration
	file   tokenFile
	now    func() time.Time
	logger logrus.FieldLogger

	mu        sync.Mutex
	current   UserID
	email     string
	listeners map[int]Listener
	nextID    int
}

// NewService creates an auth service. Call Restore to pick up a session
// from a previous run.
func NewService(users store.UserRepo, cfg Config, logger logrus.FieldLogger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth secret is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}
	return &Service{
		users:     users,
		secret:    []byte(cfg.Secret),
		ttl:       cfg.SessionTTL,
		file:      tokenFile{path: cfg.TokenPath},
		now:       time.Now,
		logger:    logger,
		listeners: make(map[int]Listener),
	}, nil
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, c Credentials) (UserID, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	hash, err := HashPassword(c.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := store.User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(c.Email),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	id := UserID(user.ID)
	if err := s.startSession(id, user.Email); err != nil {
		return "", err
	}
	return id, nil
}

// SignIn checks c against the stored account and starts a session.
func (s *Service) SignIn(ctx context.Context, c Credentials) (UserID, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.UserByEmail(ctx, c.Email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if !CheckPassword(c.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	id := UserID(user.ID)
	if err := s.startSession(id, user.Email); err != nil {
		return "", err
	}
	return id, nil
}

// SignOut ends the session.
func (s *Service) SignOut(ctx context.Context) error {
	s.mu.Lock()
	if s.current == "" {
		s.mu.Unlock()
		return ErrNotSignedIn
	}
	s.current, s.email = "", ""
	s.mu.Unlock()

	err := s.file.remove()
	s.notify("", false)
	if err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Service) CurrentUser() (UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != ""
}

// CurrentEmail returns the signed-in user's email, if any.
func (s *Service) CurrentEmail() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email, s.current != ""
}

// Subscribe registers l for identity changes and returns a function that
// removes it.
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Restore resumes the session saved by a previous run. An expired or
// tampered token is discarded and the user stays signed out.
func (s *Service) Restore(ctx context.Context) (UserID, bool) {
	raw, err := s.file.read()
	if err != nil {
		return "", false
	}

	claims, err := parseToken(s.secret, raw, s.now())
	if err != nil {
		s.logger.WithError(err).Info("discarding saved session")
		_ = s.file.remove()
		return "", false
	}

	id := UserID(claims.Subject)
	if _, err := s.users.UserByID(ctx, string(id)); err != nil {
		s.logger.WithError(err).WithField("user", id).Info("saved session has no account")
		_ = s.file.remove()
		return "", false
	}

	s.mu.Lock()
	s.current, s.email = id, claims.Email
	s.mu.Unlock()
	s.notify(id, true)
	return id, true
}

func (s *Service) startSession(id UserID, email string) error {
	token, err := issueToken(s.secret, id, email, s.now(), s.ttl)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	if err := s.file.write(token); err != nil {
		// The in-process session still works.
		s.logger.WithError(err).WithField("user", id).Warn("session token not saved")
	}

	s.mu.Lock()
	s.current, s.email = id, email
	s.mu.Unlock()
	s.notify(id, true)
	return nil
}

// notify calls listeners outside the lock so they may call back into s.
func (s *Service) notify(id UserID, signedIn bool) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(id, signedIn)
	}
}
