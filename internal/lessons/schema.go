package lessons

import (
	"strconv"

	"github.com/abhisek/lingocalm/internal/llm"
)

// wordProperties describes one vocabulary item as the model returns it.
var wordProperties = map[string]any{
	"targetWord": map[string]any{
		"type":        "string",
		"description": "The word in the target language",
	},
	"nativeMeaning": map[string]any{
		"type":        "string",
		"description": "The meaning in English",
	},
	"pronunciationGuide": map[string]any{
		"type":        "string",
		"description": "Phonetic pronunciation guide for English speakers",
	},
	"exampleSentenceTarget": map[string]any{
		"type":        "string",
		"description": "Simple example sentence in the target language",
	},
	"exampleSentenceNative": map[string]any{
		"type":        "string",
		"description": "English translation of the example sentence",
	},
}

var wordRequired = []any{
	"targetWord", "nativeMeaning", "pronunciationGuide",
	"exampleSentenceTarget", "exampleSentenceNative",
}

// VocabularySchema returns the schema for a lesson of count words. The
// name includes the count so compiled schemas are cached per size.
func VocabularySchema(count int) *llm.Schema {
	name := "vocabulary-lesson"
	if count != DefaultConfig().WordCount {
		name = name + "-" + strconv.Itoa(count)
	}
	return &llm.Schema{
		Name:        name,
		Description: "A short list of beginner vocabulary words with pronunciation and examples",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type":     "array",
					"minItems": count,
					"maxItems": count,
					"items": map[string]any{
						"type":                 "object",
						"properties":           wordProperties,
						"required":             wordRequired,
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"words"},
			"additionalProperties": false,
		},
	}
}
