package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/lingocalm/internal/llm"
	"github.com/abhisek/lingocalm/internal/progress"
)

// Service generates daily lessons with a language model.
type Service struct {
	provider llm.Provider
	cfg      Config
	engine   *progress.Engine
}

// NewService creates a lesson generation service. engine supplies the
// date key of generated lessons.
func NewService(provider llm.Provider, cfg Config, engine *progress.Engine) *Service {
	if cfg.WordCount <= 0 {
		cfg.WordCount = DefaultConfig().WordCount
	}
	return &Service{provider: provider, cfg: cfg, engine: engine}
}

type lessonOutput struct {
	Words []wordOutput `json:"words"`
}

type wordOutput struct {
	TargetWord            string `json:"targetWord"`
	NativeMeaning         string `json:"nativeMeaning"`
	PronunciationGuide    string `json:"pronunciationGuide"`
	ExampleSentenceTarget string `json:"exampleSentenceTarget"`
	ExampleSentenceNative string `json:"exampleSentenceNative"`
}

// FetchLesson asks the model for today's words in lang.
func (s *Service) FetchLesson(ctx context.Context, lang progress.Language) (progress.DailyLesson, error) {
	if !lang.Valid() {
		return progress.DailyLesson{}, &GenerationError{Language: lang, Err: fmt.Errorf("unsupported language")}
	}
	ctx = llm.WithCall(ctx, llm.Call{Purpose: llm.PurposeLesson, Language: lang.String()})

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(lang, s.cfg.WordCount)},
		},
		Schema:      VocabularySchema(s.cfg.WordCount),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return progress.DailyLesson{}, ctx.Err()
		}
		return progress.DailyLesson{}, &GenerationError{Language: lang, Err: err}
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return progress.DailyLesson{}, &GenerationError{Language: lang, Err: fmt.Errorf("parse lesson response: %w", err)}
	}

	lesson := progress.DailyLesson{
		ID: s.engine.TodayKey(),
		Words: lo.Map(out.Words, func(w wordOutput, _ int) progress.VocabularyWord {
			return progress.VocabularyWord{
				TargetWord:            strings.TrimSpace(w.TargetWord),
				NativeMeaning:         strings.TrimSpace(w.NativeMeaning),
				PronunciationGuide:    strings.TrimSpace(w.PronunciationGuide),
				ExampleSentenceTarget: strings.TrimSpace(w.ExampleSentenceTarget),
				ExampleSentenceNative: strings.TrimSpace(w.ExampleSentenceNative),
			}
		}),
	}
	if err := progress.ValidateLesson(lesson); err != nil {
		return progress.DailyLesson{}, &GenerationError{Language: lang, Err: err}
	}
	return lesson, nil
}
