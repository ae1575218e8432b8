package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"github.com/tahcohcat/gofigure-interrogation/internal/tts"
)

// SpeakHandler voices suspect replies and narration.
type SpeakHandler struct {
	tts           tts.Synthesizer
	games         *GameHandler
	narratorVoice string
	logger        *logger.Log
}

func NewSpeakHandler(synth tts.Synthesizer, games *GameHandler, narratorVoice string) *SpeakHandler {
	return &SpeakHandler{
		tts:           synth,
		games:         games,
		narratorVoice: narratorVoice,
		logger:        logger.New(),
	}
}

type speakRequest struct {
	Text    string `json:"text"`
	Suspect string `json:"suspect"` // empty means the narrator
}

// POST /api/game/{session}/speak - MP3 audio for a line
func (sh *SpeakHandler) Speak(w http.ResponseWriter, r *http.Request) {
	session, ok := sh.games.Session(mux.Vars(r)["session"])
	if !ok {
		writeError(w, http.StatusNotFound, "Game session not found")
		return
	}

	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mood, line := tts.MoodFromReply(req.Text)
	if line == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	voice := sh.narratorVoice
	if req.Suspect != "" {
		s := session.Scenario.FindSuspect(req.Suspect)
		if s == nil {
			writeError(w, http.StatusNotFound, "Suspect not found")
			return
		}
		if s.Voice != "" {
			voice = s.Voice
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	audio, err := sh.tts.Synthesize(ctx, line, mood, voice)
	if err != nil {
		sh.logger.WithError(err).Error("Failed to generate TTS audio")
		writeError(w, http.StatusBadGateway, "Failed to generate audio")
		return
	}
	if len(audio) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
