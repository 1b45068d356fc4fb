package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingocalm/internal/progress"
	"github.com/abhisek/lingocalm/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and bars so that
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Align(lipgloss.Center).
		Render(content)
}

// WordCard renders one vocabulary word: the word and its pronunciation,
// the meaning, then the example sentence pair.
func WordCard(w progress.VocabularyWord, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Word.Render(w.TargetWord))
	if w.PronunciationGuide != "" {
		b.WriteString("\n")
		b.WriteString(theme.Pronunciation.Render("/" + w.PronunciationGuide + "/"))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("────"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(w.NativeMeaning))

	card := Card(b.String(), cw)

	if w.ExampleSentenceTarget == "" {
		return card
	}
	example := theme.Example.Render("\""+w.ExampleSentenceTarget+"\"") + "\n" +
		theme.Hint.Render(w.ExampleSentenceNative)
	exampleBox := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(example)

	return lipgloss.JoinVertical(lipgloss.Center, card, exampleBox)
}
