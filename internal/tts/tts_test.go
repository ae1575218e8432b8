package tts

import (
	"context"
	"testing"

	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahcohcat/gofigure-interrogation/config"
)

func TestMoodFromReply(t *testing.T) {
	tests := []struct {
		in, mood, line string
	}{
		{"(Annoyed) We have established that. Ask your questions.", "annoyed", "We have established that. Ask your questions."},
		{"(nervous but precise) I am listening.", "nervous but precise", "I am listening."},
		{"I was in the library.", "", "I was in the library."},
		{"  (Silent)  ", "silent", ""},
	}

	for _, tt := range tests {
		mood, line := MoodFromReply(tt.in)
		assert.Equal(t, tt.mood, mood, tt.in)
		assert.Equal(t, tt.line, line, tt.in)
	}
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en-GB", languageCode("en-GB-Chirp3-HD-Puck"))
	assert.Equal(t, "en-US", languageCode("en-US-Standard-C"))
	assert.Equal(t, "en-US", languageCode("narrator"))
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("[bold]Silence[/bold] is golden", "nervous but precise", "")
	require.NoError(t, err)

	assert.Equal(t, "Silence is golden", req.Input.GetText())
	assert.Equal(t, defaultVoice, req.Voice.Name)
	assert.Equal(t, "en-GB", req.Voice.LanguageCode)
	assert.Equal(t, ttspb.AudioEncoding_MP3, req.AudioConfig.AudioEncoding)
	assert.Equal(t, 1.2, req.AudioConfig.SpeakingRate)
	assert.Equal(t, 2.0, req.AudioConfig.Pitch)

	_, err = buildRequest(" [] ", "", "")
	assert.ErrorIs(t, err, errEmptyText)
}

func TestMoodModulation(t *testing.T) {
	assert.Equal(t, 0.8, speakingRate("silent"))
	assert.Equal(t, -2.0, pitch("offended"))
	assert.Equal(t, 1.0, speakingRate(""))
	assert.Equal(t, 0.0, pitch(""))
}

func TestDisabledUsesDummy(t *testing.T) {
	s := New(context.Background(), config.TtsConfig{Enabled: false, Type: "google"})
	assert.Equal(t, "dummy", s.Name())

	audio, err := s.Synthesize(context.Background(), "hello", "", "")
	assert.NoError(t, err)
	assert.Empty(t, audio)

	s = New(context.Background(), config.TtsConfig{Enabled: true, Type: "espeak"})
	assert.Equal(t, "dummy", s.Name())
}
