package lessons

// Config holds lesson generation settings.
type Config struct {
	// WordCount is the number of words in a lesson.
	WordCount   int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults: five words per lesson.
func DefaultConfig() Config {
	return Config{
		WordCount:   5,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
