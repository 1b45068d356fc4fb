package lessons

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/abhisek/lingocalm/internal/progress"
)

// Bank is the built-in word list used when no lesson can be generated.
type Bank struct {
	words map[progress.Language][]progress.VocabularyWord
}

// NewBank returns the built-in bank.
func NewBank() *Bank {
	return &Bank{words: bankWords}
}

// Lesson returns every bank word for lang, unpracticed, keyed by dateKey.
func (b *Bank) Lesson(lang progress.Language, dateKey string) progress.DailyLesson {
	return progress.DailyLesson{ID: dateKey, Words: b.Words(lang)}
}

// RandomLesson returns up to count bank words for lang in random order.
// A nil rng uses the global source.
func (b *Bank) RandomLesson(lang progress.Language, dateKey string, count int, rng *rand.Rand) progress.DailyLesson {
	words := b.Words(lang)
	if rng != nil {
		rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	} else {
		words = lo.Shuffle(words)
	}
	if count >= 0 && count < len(words) {
		words = words[:count]
	}
	return progress.DailyLesson{ID: dateKey, Words: words}
}

// Words returns a copy of the bank words for lang. Unknown languages have
// none.
func (b *Bank) Words(lang progress.Language) []progress.VocabularyWord {
	src := b.words[lang]
	out := make([]progress.VocabularyWord, len(src))
	copy(out, src)
	return out
}

func word(target, meaning, pronunciation, exampleTarget, exampleNative string) progress.VocabularyWord {
	return progress.VocabularyWord{
		TargetWord:            target,
		NativeMeaning:         meaning,
		PronunciationGuide:    pronunciation,
		ExampleSentenceTarget: exampleTarget,
		ExampleSentenceNative: exampleNative,
	}
}

var bankWords = map[progress.Language][]progress.VocabularyWord{
	progress.Spanish: {
		word("Hola", "Hello", "OH-lah",
			"Hola, ¿cómo estás?",
			"Hello, how are you?"),
		word("Gracias", "Thank you", "GRAH-see-ahs",
			"Muchas gracias por tu ayuda.",
			"Thank you very much for your help."),
		word("Amor", "Love", "ah-MOR",
			"El amor es hermoso.",
			"Love is beautiful."),
		word("Sol", "Sun", "sohl",
			"El sol brilla hoy.",
			"The sun is shining today."),
		word("Agua", "Water", "AH-gwah",
			"Necesito un vaso de agua.",
			"I need a glass of water."),
	},
	progress.French: {
		word("Bonjour", "Hello / Good day", "bohn-ZHOOR",
			"Bonjour, comment allez-vous?",
			"Hello, how are you?"),
		word("Merci", "Thank you", "mehr-SEE",
			"Merci beaucoup!",
			"Thank you very much!"),
		word("Amour", "Love", "ah-MOOR",
			"L'amour est dans l'air.",
			"Love is in the air."),
		word("Soleil", "Sun", "soh-LAY",
			"Le soleil se lève.",
			"The sun is rising."),
		word("Eau", "Water", "oh",
			"Je voudrais de l'eau, s'il vous plaît.",
			"I would like some water, please."),
	},
	progress.Italian: {
		word("Ciao", "Hello / Goodbye", "CHOW",
			"Ciao, come stai?",
			"Hi, how are you?"),
		word("Grazie", "Thank you", "GRAH-tsee-eh",
			"Grazie mille!",
			"Thanks a lot!"),
		word("Amore", "Love", "ah-MOH-reh",
			"L'amore è bellissimo.",
			"Love is beautiful."),
		word("Sole", "Sun", "SOH-leh",
			"Il sole splende oggi.",
			"The sun is shining today."),
		word("Acqua", "Water", "AH-kwah",
			"Vorrei un bicchiere d'acqua.",
			"I would like a glass of water."),
	},
	progress.German: {
		word("Hallo", "Hello", "HAH-loh",
			"Hallo, wie geht es dir?",
			"Hello, how are you?"),
		word("Danke", "Thank you", "DAHN-keh",
			"Danke schön!",
			"Thank you very much!"),
		word("Liebe", "Love", "LEE-beh",
			"Liebe ist wunderbar.",
			"Love is wonderful."),
		word("Sonne", "Sun", "ZON-neh",
			"Die Sonne scheint heute.",
			"The sun is shining today."),
		word("Wasser", "Water", "VAH-ser",
			"Ich möchte ein Glas Wasser.",
			"I would like a glass of water."),
	},
	progress.Japanese: {
		word("こんにちは", "Hello", "kon-NEE-chee-wah",
			"こんにちは、元気ですか？",
			"Hello, how are you?"),
		word("ありがとう", "Thank you", "ah-ree-GAH-toh",
			"ありがとうございます。",
			"Thank you very much."),
		word("愛", "Love", "ah-ee",
			"愛は美しいです。",
			"Love is beautiful."),
		word("太陽", "Sun", "tah-ee-YOH",
			"今日は太陽が輝いています。",
			"The sun is shining today."),
		word("水", "Water", "mee-zoo",
			"水を一杯ください。",
			"Please give me a glass of water."),
	},
}

// BankSource serves lessons from the bank alone. It is the lesson source
// when no language model is configured.
type BankSource struct {
	Bank   *Bank
	Engine *progress.Engine
	Count  int
}

// FetchLesson returns Count random bank words for lang.
func (s BankSource) FetchLesson(ctx context.Context, lang progress.Language) (progress.DailyLesson, error) {
	if err := ctx.Err(); err != nil {
		return progress.DailyLesson{}, err
	}
	lesson := s.Bank.RandomLesson(lang, s.Engine.TodayKey(), s.Count, nil)
	if len(lesson.Words) == 0 {
		return progress.DailyLesson{}, &GenerationError{Language: lang, Err: errors.New("no bank words")}
	}
	return lesson, nil
}
