package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/app"
	"github.com/abhisek/lingocalm/internal/progress"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			snap, err := openLesson(ctx, e)
			if err != nil {
				return err
			}
			printLesson(snap)
			return nil
		})
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Mark the current word practiced and show the next one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			ctrl := e.controller(ctx)
			snap, err := lessonSnapshot(ctx, e, ctrl)
			if err != nil {
				return err
			}
			if snap.Mode == progress.ModeSummary {
				fmt.Println("Today's lesson is already complete. See you tomorrow.")
				return nil
			}

			word, _ := snap.CurrentWord()
			snap, err = ctrl.CompleteWord(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Practiced %q.\n", word.TargetWord)

			if snap.Mode == progress.ModeSummary {
				fmt.Printf("Lesson complete. Streak: %d day%s.\n", snap.State.Streak, plural(snap.State.Streak))
				return nil
			}
			next, _ := snap.CurrentWord()
			fmt.Println()
			printWord(snap.ActiveIndex, len(snap.State.CurrentLesson.Words), next)
			return nil
		})
	},
}

var languageCmd = &cobra.Command{
	Use:   "language <name>",
	Short: "Pick a language and start a fresh lesson",
	Long: fmt.Sprintf("Pick a language and start a fresh lesson. Supported: %s.",
		strings.Join(languageNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := progress.ParseLanguage(args[0])
		if err != nil {
			return fmt.Errorf("%w (choose one of %s)", err, strings.Join(languageNames(), ", "))
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if _, err := e.user(); err != nil {
				return err
			}
			ctrl := e.controller(ctx)
			if _, err := ctrl.Load(ctx); err != nil {
				return err
			}
			fmt.Println(generatingLine(lang))
			snap, err := ctrl.SelectLanguage(ctx, lang)
			if err != nil {
				return fetchError(snap, err)
			}
			printLesson(snap)
			return nil
		})
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Pronounce the current word",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			tts := e.speaker()
			if tts == nil {
				return errors.New("speech is disabled (set speech.enabled: true)")
			}
			snap, err := openLesson(ctx, e)
			if err != nil {
				return err
			}
			word, ok := snap.CurrentWord()
			if !ok {
				return errors.New("no word to pronounce: today's lesson is complete")
			}
			fmt.Printf("%s [%s]\n", word.TargetWord, word.PronunciationGuide)
			return tts.Say(ctx, word.TargetWord, snap.State.Language.Locale())
		})
	},
}

// openLesson loads today's lesson for the signed-in user, fetching one if
// needed.
func openLesson(ctx context.Context, e *env) (app.Snapshot, error) {
	return lessonSnapshot(ctx, e, e.controller(ctx))
}

func lessonSnapshot(ctx context.Context, e *env, ctrl *app.Controller) (app.Snapshot, error) {
	if _, err := e.user(); err != nil {
		return app.Snapshot{}, err
	}
	snap, err := ctrl.Load(ctx)
	if err != nil {
		return snap, err
	}
	switch snap.Mode {
	case progress.ModeOnboarding:
		return snap, errNoLanguage
	case progress.ModeGenerating:
		fmt.Println(snap.Message)
		snap, err = ctrl.Generate(ctx)
		if err != nil {
			return snap, fetchError(snap, err)
		}
	}
	return snap, nil
}

// fetchError shows the user-facing message for a failed fetch; the cause
// is already in the log.
func fetchError(snap app.Snapshot, err error) error {
	if snap.Failed() {
		return errors.New(snap.Message)
	}
	return err
}

func printLesson(snap app.Snapshot) {
	s := snap.State
	if s.CurrentLesson == nil || s.Language == nil {
		fmt.Println("No lesson yet.")
		return
	}
	lesson := *s.CurrentLesson
	done := len(lesson.Words) - len(unpracticed(lesson))

	fmt.Printf("%s · %s · streak %d\n", *s.Language, lesson.ID, s.Streak)
	fmt.Printf("%d of %d words practiced\n", done, len(lesson.Words))
	fmt.Println(strings.Repeat("─", 48))
	for i, w := range lesson.Words {
		mark := " "
		switch {
		case w.Practiced:
			mark = "✓"
		case snap.Mode == progress.ModeLesson && i == snap.ActiveIndex:
			mark = "›"
		}
		fmt.Printf("%s %-18s %s\n", mark, w.TargetWord, w.NativeMeaning)
	}

	if word, ok := snap.CurrentWord(); ok {
		fmt.Println()
		printWord(snap.ActiveIndex, len(lesson.Words), word)
	} else if s.CompletedToday {
		fmt.Println()
		fmt.Println("Lesson complete. Come back tomorrow for new words.")
	}
}

func printWord(index, total int, w progress.VocabularyWord) {
	fmt.Printf("Word %d of %d\n", index+1, total)
	fmt.Printf("  %s  [%s]\n", w.TargetWord, w.PronunciationGuide)
	fmt.Printf("  %s\n", w.NativeMeaning)
	if w.ExampleSentenceTarget != "" {
		fmt.Printf("  %s\n  %s\n", w.ExampleSentenceTarget, w.ExampleSentenceNative)
	}
}

func unpracticed(l progress.DailyLesson) []progress.VocabularyWord {
	return lo.Reject(l.Words, func(w progress.VocabularyWord, _ int) bool {
		return w.Practiced
	})
}

func languageNames() []string {
	return lo.Map(progress.Languages(), func(l progress.Language, _ int) string {
		return strings.ToLower(l.String())
	})
}

func generatingLine(lang progress.Language) string {
	return fmt.Sprintf("Crafting a calm %s lesson for you...", lang)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
