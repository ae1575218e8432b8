package tts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

const defaultVoice = "en-GB-Chirp3-HD-Charon"

var (
	errEmptyText = errors.New("text cannot be empty")

	// rich-style tags like [bold yellow] are not spoken
	markupTag = regexp.MustCompile(`\[/?[a-z ]*\]`)
)

// GoogleTTS synthesizes MP3 audio with Google Cloud Text-to-Speech.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
type GoogleTTS struct {
	client *texttospeech.Client
	logger *logger.Log
}

func NewGoogleTTS(ctx context.Context) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleTTS{
		client: client,
		logger: logger.New(),
	}, nil
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text, mood, voice string) ([]byte, error) {
	req, err := buildRequest(text, mood, voice)
	if err != nil {
		return nil, err
	}

	g.logger.Debug(fmt.Sprintf("Generating Google TTS audio with voice: %s, language: %s, mood: %s",
		req.Voice.Name, req.Voice.LanguageCode, mood))

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}

	g.logger.Debug(fmt.Sprintf("Generated %d bytes of MP3 audio", len(resp.AudioContent)))
	return resp.AudioContent, nil
}

func (g *GoogleTTS) Name() string {
	return "google"
}

func (g *GoogleTTS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func buildRequest(text, mood, voice string) (*ttspb.SynthesizeSpeechRequest, error) {
	clean := strings.TrimSpace(markupTag.ReplaceAllString(text, ""))
	if clean == "" {
		return nil, errEmptyText
	}
	if voice == "" {
		voice = defaultVoice
	}

	return &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: clean},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_MP3,
			SpeakingRate:    speakingRate(mood),
			Pitch:           pitch(mood),
			SampleRateHertz: 22050,
		},
	}, nil
}

// languageCode extracts "en-GB" from a voice name like "en-GB-Standard-D".
func languageCode(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

func speakingRate(mood string) float64 {
	switch {
	case strings.Contains(mood, "nervous"), strings.Contains(mood, "anxious"):
		return 1.2
	case mood == "offended", mood == "annoyed":
		return 1.1
	case mood == "defensively":
		return 1.05
	case mood == "silent":
		return 0.8
	case strings.Contains(mood, "stern"), strings.Contains(mood, "formal"), strings.Contains(mood, "evasive"):
		return 0.95
	default:
		return 1.0
	}
}

func pitch(mood string) float64 {
	switch {
	case strings.Contains(mood, "nervous"), strings.Contains(mood, "anxious"):
		return 2.0
	case mood == "offended", mood == "annoyed":
		return -2.0
	case mood == "defensively":
		return 1.0
	case mood == "silent":
		return -3.0
	case strings.Contains(mood, "evasive"):
		return -1.5
	case strings.Contains(mood, "stern"), strings.Contains(mood, "formal"):
		return -1.0
	default:
		return 0.0
	}
}
