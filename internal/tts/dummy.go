package tts

import (
	"context"

	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// DummyTts produces no audio.
type DummyTts struct{}

func NewDummyTts() *DummyTts {
	return &DummyTts{}
}

func (d *DummyTts) Synthesize(_ context.Context, text, mood, voice string) ([]byte, error) {
	logger.New().Debug("no tts configured. ignoring TTS request")
	return nil, nil
}

func (d *DummyTts) Name() string {
	return "dummy"
}
