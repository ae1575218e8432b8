package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/tahcohcat/gofigure-interrogation/internal/auth"
)

type Server struct {
	Games          *GameHandler
	Speak          *SpeakHandler
	Auth           *auth.Auth
	Events         http.Handler // websocket feed
	AllowedOrigins []string
}

// Handler wires the routes and wraps them in CORS.
func (s Server) Handler() http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", s.Auth.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", s.Auth.LogoutHandler).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Authenticated routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(s.Auth.Middleware)

	apiRouter := authRouter.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/scenarios", s.Games.ListScenarios).Methods("GET")
	apiRouter.HandleFunc("/cases", s.Games.RecentCases).Methods("GET")
	apiRouter.HandleFunc("/game/start", s.Games.StartGame).Methods("POST")
	apiRouter.HandleFunc("/game/{session}", s.Games.GetGame).Methods("GET")
	apiRouter.HandleFunc("/game/{session}", s.Games.EndGame).Methods("DELETE")
	apiRouter.HandleFunc("/game/{session}/ask", s.Games.Ask).Methods("POST")
	apiRouter.HandleFunc("/game/{session}/accuse", s.Games.Accuse).Methods("POST")
	if s.Speak != nil {
		apiRouter.HandleFunc("/game/{session}/speak", s.Speak.Speak).Methods("POST")
	}

	if s.Events != nil {
		authRouter.Handle("/ws", s.Events)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
