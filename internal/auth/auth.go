package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"golang.org/x/crypto/bcrypt"
)

const sessionName = "gofigure-session"

// Auth guards the API with a single shared password. An empty password hash
// disables login.
type Auth struct {
	store *sessions.CookieStore
	hash  []byte
}

func New(cfg config.ServerConfig) *Auth {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Auth{
		store: store,
		hash:  []byte(strings.TrimSpace(cfg.PasswordHash)),
	}
}

// HashPassword returns the bcrypt hash to put in server.password_hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (a *Auth) Enabled() bool {
	return len(a.hash) > 0
}

func (a *Auth) CheckPassword(password string) bool {
	if !a.Enabled() {
		return true
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
}

type loginRequest struct {
	Password string `json:"password"`
}

// LoginHandler accepts a JSON body or a form with a password field.
func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	password := ""
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		password = req.Password
	} else {
		r.ParseForm()
		password = r.FormValue("password")
	}

	if !a.CheckPassword(password) {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = true
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}

// Middleware rejects requests without a logged-in session.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		session, _ := a.store.Get(r, sessionName)
		if ok, _ := session.Values["authenticated"].(bool); !ok {
			writeError(w, http.StatusUnauthorized, "Login required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
