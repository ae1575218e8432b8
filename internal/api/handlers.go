package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"github.com/tahcohcat/gofigure-interrogation/internal/models"
)

// CaseStore is the part of the case log the API reads.
type CaseStore interface {
	Recent(n int) ([]models.CaseFile, error)
	Stats() (models.CaseStats, error)
}

// gameEntry serializes requests against one session so suspect state can
// be read safely between turns.
type gameEntry struct {
	mu      sync.Mutex
	session *game.Session
}

type GameHandler struct {
	mu       sync.RWMutex
	sessions map[string]*gameEntry

	library  *game.Library
	brain    game.Interrogator
	rules    game.Rules
	publish  func(game.Event)
	recorder func(game.Summary)
	cases    CaseStore
	logger   *logger.Log
}

func NewGameHandler(library *game.Library, brain game.Interrogator, rules game.Rules) *GameHandler {
	return &GameHandler{
		sessions: make(map[string]*gameEntry),
		library:  library,
		brain:    brain,
		rules:    rules,
		logger:   logger.New(),
	}
}

// WithPublisher receives every session event, e.g. the websocket hub.
func (gh *GameHandler) WithPublisher(fn func(game.Event)) *GameHandler {
	gh.publish = fn
	return gh
}

// WithRecorder receives each case once it closes.
func (gh *GameHandler) WithRecorder(fn func(game.Summary)) *GameHandler {
	gh.recorder = fn
	return gh
}

func (gh *GameHandler) WithCases(cases CaseStore) *GameHandler {
	gh.cases = cases
	return gh
}

type suspectView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Personality string `json:"personality"`
	Willingness int    `json:"willingness"`
	Revealed    int    `json:"revealed"`
}

type gameView struct {
	SessionID string        `json:"session_id"`
	Title     string        `json:"title"`
	Intro     string        `json:"intro,omitempty"`
	Status    game.Status   `json:"status"`
	Turns     int           `json:"turns"`
	TurnsLeft int           `json:"turns_left"`
	Score     int           `json:"score"`
	Outcome   string        `json:"outcome,omitempty"`
	Suspects  []suspectView `json:"suspects"`
}

// GET /api/scenarios - List available scenarios
func (gh *GameHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": gh.library.List(),
	})
}

// POST /api/game/start - Start a new game
func (gh *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	scenario, err := gh.library.Load(req.ScenarioID)
	if errors.Is(err, game.ErrUnknownScenario) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario: "+err.Error())
		return
	}

	session := game.NewSession(scenario, gh.brain, gh.rules)
	session.WithListener(gh.listener(session))

	entry := &gameEntry{session: session}
	gh.mu.Lock()
	gh.sessions[session.ID] = entry
	gh.mu.Unlock()

	gh.logger.Info(fmt.Sprintf("Started game %s (%s)", session.ID, scenario.Meta.Title))

	entry.mu.Lock()
	view := gh.view(entry.session, true)
	entry.mu.Unlock()

	writeJSON(w, http.StatusCreated, view)
}

// GET /api/game/{session} - Current state
func (gh *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	entry := gh.entry(w, r)
	if entry == nil {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	writeJSON(w, http.StatusOK, gh.view(entry.session, false))
}

type askRequest struct {
	Suspect  string `json:"suspect"`
	Question string `json:"question"`
}

type askResponse struct {
	Suspect string     `json:"suspect"`
	Reply   game.Reply `json:"reply"`
	Game    gameView   `json:"game"`
}

// POST /api/game/{session}/ask - Question a suspect
func (gh *GameHandler) Ask(w http.ResponseWriter, r *http.Request) {
	entry := gh.entry(w, r)
	if entry == nil {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	reply, err := entry.session.Ask(r.Context(), req.Suspect, req.Question)
	switch {
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "Game is over")
		return
	case errors.Is(err, game.ErrUnknownSuspect):
		writeError(w, http.StatusNotFound, "Suspect not found")
		return
	case errors.Is(err, game.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := req.Suspect
	if s := entry.session.Scenario.FindSuspect(req.Suspect); s != nil {
		name = s.Name
	}

	writeJSON(w, http.StatusOK, askResponse{
		Suspect: name,
		Reply:   reply,
		Game:    gh.view(entry.session, false),
	})
}

// POST /api/game/{session}/accuse - Name the killer
func (gh *GameHandler) Accuse(w http.ResponseWriter, r *http.Request) {
	entry := gh.entry(w, r)
	if entry == nil {
		return
	}

	var req struct {
		Suspect string `json:"suspect"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	verdict, err := entry.session.Accuse(req.Suspect)
	if errors.Is(err, game.ErrGameOver) {
		writeError(w, http.StatusConflict, "Game is already over")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// DELETE /api/game/{session} - Abandon and forget a game
func (gh *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	entry := gh.entry(w, r)
	if entry == nil {
		return
	}

	entry.mu.Lock()
	entry.session.Abandon()
	view := gh.view(entry.session, false)
	entry.mu.Unlock()

	gh.mu.Lock()
	delete(gh.sessions, entry.session.ID)
	gh.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// GET /api/cases - Recent case files
func (gh *GameHandler) RecentCases(w http.ResponseWriter, r *http.Request) {
	if gh.cases == nil {
		writeError(w, http.StatusServiceUnavailable, "Case log is not available")
		return
	}

	cases, err := gh.cases.Recent(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get cases")
		return
	}
	stats, err := gh.cases.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get case stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cases": cases,
		"stats": stats,
	})
}

// Session looks up a running game.
func (gh *GameHandler) Session(id string) (*game.Session, bool) {
	gh.mu.RLock()
	defer gh.mu.RUnlock()

	entry, ok := gh.sessions[id]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

func (gh *GameHandler) entry(w http.ResponseWriter, r *http.Request) *gameEntry {
	id := mux.Vars(r)["session"]

	gh.mu.RLock()
	entry, ok := gh.sessions[id]
	gh.mu.RUnlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Game session not found")
		return nil
	}
	return entry
}

// listener forwards events and records the case when it closes.
func (gh *GameHandler) listener(session *game.Session) func(game.Event) {
	return func(ev game.Event) {
		if gh.publish != nil {
			gh.publish(ev)
		}

		switch ev.Type {
		case game.EventAccused, game.EventTimeout, game.EventAbandoned:
			if gh.recorder != nil {
				gh.recorder(session.Summary())
			}
		}
	}
}

// view must be called with the entry locked.
func (gh *GameHandler) view(session *game.Session, intro bool) gameView {
	snap := session.Snapshot()

	v := gameView{
		SessionID: session.ID,
		Title:     session.Scenario.Meta.Title,
		Status:    snap.Status,
		Turns:     snap.Turns,
		TurnsLeft: session.TurnsLeft(),
		Score:     snap.Score,
		Suspects:  make([]suspectView, 0, len(session.Scenario.Suspects)),
	}
	if intro {
		v.Intro = session.Scenario.Meta.IntroText
	}
	if snap.Status != game.StatusActive {
		v.Outcome = session.Outcome()
	}

	for _, s := range session.Scenario.Suspects {
		v.Suspects = append(v.Suspects, suspectView{
			ID:          s.ID,
			Name:        s.Name,
			Bio:         s.Bio,
			Personality: s.PersonalityLabel(),
			Willingness: s.Willingness,
			Revealed:    session.Revealed(s.ID),
		})
	}

	return v
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
