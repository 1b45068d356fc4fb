// Package speech pronounces lesson words aloud.
package speech

// Speaker pronounces text in a locale such as "fr-FR". Speak returns
// immediately; failures never reach the caller.
type Speaker interface {
	Speak(text, locale string)
}

// NopSpeaker discards every request.
type NopSpeaker struct{}

func (NopSpeaker) Speak(string, string) {}
