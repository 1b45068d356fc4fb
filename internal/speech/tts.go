package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the Google Translate TTS endpoint. It needs no API key.
const DefaultEndpoint = "https://translate.google.com/translate_tts"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// TTSConfig configures a TTSSpeaker.
type TTSConfig struct {
	// CacheDir holds downloaded MP3 files.
	CacheDir string

	// Player is the command that plays an MP3, e.g. "mpg123 -q". The file
	// path is appended as the last argument. Empty only downloads.
	Player string

	// Endpoint overrides DefaultEndpoint.
	Endpoint string

	// Timeout bounds one download. Defaults to 10s.
	Timeout time.Duration
}

// TTSSpeaker downloads pronunciations from a TTS endpoint, caches them on
// disk and hands them to a player command.
type TTSSpeaker struct {
	cfg    TTSConfig
	client *http.Client
	logger logrus.FieldLogger

	wg sync.WaitGroup
}

// NewTTSSpeaker creates a TTSSpeaker.
func NewTTSSpeaker(cfg TTSConfig, logger logrus.FieldLogger) *TTSSpeaker {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TTSSpeaker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Speak fetches and plays text in the background.
func (s *TTSSpeaker) Speak(text, locale string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*s.cfg.Timeout)
		defer cancel()

		if err := s.Say(ctx, text, locale); err != nil {
			s.logger.WithError(err).WithField("locale", locale).Warn("pronunciation failed")
		}
	}()
}

// Wait blocks until every pending Speak call has finished.
func (s *TTSSpeaker) Wait() {
	s.wg.Wait()
}

// Say fetches text and plays it, returning once playback ends.
func (s *TTSSpeaker) Say(ctx context.Context, text, locale string) error {
	path, err := s.Fetch(ctx, text, locale)
	if err != nil {
		return err
	}
	return s.play(ctx, path)
}

// Fetch returns the path of the cached MP3 for text, downloading it first
// when missing.
func (s *TTSSpeaker) Fetch(ctx context.Context, text, locale string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("nothing to pronounce")
	}

	path := filepath.Join(s.cfg.CacheDir, cacheName(text, locale))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache: %w", err)
	}
	if err := s.download(ctx, text, locale, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *TTSSpeaker) download(ctx context.Context, text, locale, path string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", language(locale))
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch audio: unexpected status %d", resp.StatusCode)
	}

	// Write to a temp file first so a partial download never becomes a
	// cache hit.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tts-*")
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func (s *TTSSpeaker) play(ctx context.Context, path string) error {
	args := strings.Fields(s.cfg.Player)
	if len(args) == 0 {
		return nil
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// cacheName derives a stable file name for a locale and text pair.
func cacheName(text, locale string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(locale+"\x00"+text))
	return id.String() + ".mp3"
}

// language returns the language part of a locale ("fr-FR" → "fr").
func language(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}
