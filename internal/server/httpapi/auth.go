package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/Kirill555dg/NotesApp/internal/server/repository"
	"github.com/Kirill555dg/NotesApp/internal/server/service"
)

func (r *Router) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Notes API",
		"version":        r.version,
		"authentication": "JWT Bearer Token",
		"endpoints": map[string]string{
			"register": "/register",
			"login":    "/login",
			"notes":    "/notes",
		},
	})
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   r.version,
	})
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body credentialsRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if details := body.validate(); details != nil {
		writeValidationErrors(w, details)
		return
	}
	user, err := r.services.Auth.Register(req.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			r.logger.Warn("registration conflict", "username", body.Username)
			writeError(w, http.StatusBadRequest, "username already registered")
			return
		}
		r.logger.Error("registration failed", "username", body.Username, "err", err)
		writeInternalError(w)
		return
	}
	r.logger.Info("user registered", "username", user.Username, "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body credentialsRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if details := body.validate(); details != nil {
		writeValidationErrors(w, details)
		return
	}
	tokens, err := r.services.Auth.Login(req.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			r.logger.Warn("login failed", "username", body.Username)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		r.logger.Error("login error", "username", body.Username, "err", err)
		writeInternalError(w)
		return
	}
	r.logger.Info("user logged in", "username", body.Username)
	writeJSON(w, http.StatusOK, tokens)
}
