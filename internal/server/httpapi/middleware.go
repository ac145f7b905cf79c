package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kirill555dg/NotesApp/internal/server/models"
	"github.com/Kirill555dg/NotesApp/internal/server/repository"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware resolves the bearer token to a user. The three rejection
// cases (no token, bad token, unknown subject) are logged differently but
// answer with the identical status and body so the caller learns nothing
// about which step failed.
func (r *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		authz := req.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			r.logger.Warn("auth rejected: missing bearer token", "path", req.URL.Path)
			writeUnauthenticated(w)
			return
		}
		tokenString := strings.TrimPrefix(authz, "Bearer ")
		username, err := r.services.Auth.VerifyToken(tokenString)
		if err != nil {
			r.logger.Warn("auth rejected: invalid or expired token", "path", req.URL.Path)
			writeUnauthenticated(w)
			return
		}
		user, err := r.services.Auth.ResolveUser(req.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				r.logger.Warn("auth rejected: user not found", "subject", username, "path", req.URL.Path)
				writeUnauthenticated(w)
				return
			}
			r.logger.Error("resolve user", "subject", username, "error", err)
			writeInternalError(w)
			return
		}
		ctx := context.WithValue(req.Context(), userContextKey, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "authentication required")
}

func currentUser(ctx context.Context) models.User {
	if v := ctx.Value(userContextKey); v != nil {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// logRequests logs every request with a correlation id, outcome status and
// duration.
func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		next.ServeHTTP(rec, req)
		r.logger.Info("request",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
