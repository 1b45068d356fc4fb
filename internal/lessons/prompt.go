package lessons

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingocalm/internal/progress"
)

const lessonSystemPrompt = `You are a gentle language tutor. Provide accurate, simple, and encouraging content.`

// calmThemes steer the model toward quiet, everyday vocabulary.
var calmThemes = []string{"Nature", "Home", "Greetings", "Colors"}

func buildLessonUserMessage(lang progress.Language, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d beginner-friendly vocabulary words for a %s learner (English speaker).\n", count, lang)
	fmt.Fprintf(&b, "Focus on a specific calm theme if possible (e.g., %s).\n", strings.Join(calmThemes, ", "))
	b.WriteString("Ensure the words are basic and useful.\n")

	b.WriteString(`
Instructions:
1. Give each word in its usual written form in the target language.
2. The pronunciation guide is for English speakers, with the stressed syllable in capitals.
3. Example sentences are short, everyday and calm in tone.
4. Do not repeat a word within the lesson.`)

	return b.String()
}
