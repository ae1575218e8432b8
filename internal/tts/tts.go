package tts

import (
	"context"
	"regexp"
	"strings"

	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// Synthesizer turns a line of dialogue into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, mood, voice string) ([]byte, error)
	Name() string
}

var moodPrefix = regexp.MustCompile(`^\(([^)]*)\)\s*`)

// MoodFromReply splits a reply such as "(Annoyed) Ask your questions." into
// its mood and the spoken line. Replies without a mood return "".
func MoodFromReply(text string) (mood, line string) {
	text = strings.TrimSpace(text)
	m := moodPrefix.FindStringSubmatch(text)
	if m == nil {
		return "", text
	}
	return strings.ToLower(strings.TrimSpace(m[1])), strings.TrimSpace(text[len(m[0]):])
}

// New picks the configured voice. Google falls back to the dummy when the
// client cannot be created.
func New(ctx context.Context, cfg config.TtsConfig) Synthesizer {
	if !cfg.Enabled {
		return NewDummyTts()
	}

	switch strings.ToLower(cfg.Type) {
	case "google", "":
		g, err := NewGoogleTTS(ctx)
		if err != nil {
			logger.New().WithError(err).Warn("Google TTS unavailable, narration disabled")
			return NewDummyTts()
		}
		return g
	default:
		logger.New().Warn("Unknown tts.type " + cfg.Type + ", narration disabled")
		return NewDummyTts()
	}
}
