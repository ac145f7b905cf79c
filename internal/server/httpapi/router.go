package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kirill555dg/NotesApp/internal/server/service"
)

type Router struct {
	services *service.Services
	logger   *slog.Logger
	version  string
}

func NewRouter(services *service.Services, logger *slog.Logger, version string) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{services: services, logger: logger, version: version}
	mux := chi.NewRouter()
	mux.Use(r.logRequests)

	mux.Get("/", r.handleRoot)
	mux.Get("/health", r.handleHealth)
	mux.Get("/swagger.yaml", r.handleSwagger)
	mux.Post("/register", r.handleRegister)
	mux.Post("/login", r.handleLogin)

	mux.Group(func(pr chi.Router) {
		pr.Use(r.authMiddleware)
		pr.Get("/notes", r.handleListNotes)
		pr.Post("/notes", r.handleCreateNote)
		pr.Get("/notes/{id}", r.handleGetNote)
		pr.Put("/notes/{id}", r.handleUpdateNote)
		pr.Delete("/notes/{id}", r.handleDeleteNote)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeInternalError hides the fault from the client; the cause is logged
// by the caller.
func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal server error")
}
