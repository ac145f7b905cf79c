package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kirill555dg/NotesApp/internal/server/repository"
)

func (r *Router) handleListNotes(w http.ResponseWriter, req *http.Request) {
	user := currentUser(req.Context())
	skip := queryInt(req, "skip", 0)
	limit := queryInt(req, "limit", 0)
	notes, err := r.services.Notes.List(req.Context(), user.ID, skip, limit)
	if err != nil {
		r.logger.Error("list notes failed", "user_id", user.ID, "err", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (r *Router) handleCreateNote(w http.ResponseWriter, req *http.Request) {
	user := currentUser(req.Context())
	var body noteRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if details := body.validate(); details != nil {
		writeValidationErrors(w, details)
		return
	}
	note, err := r.services.Notes.Create(req.Context(), user.ID, *body.Title, *body.Content, body.Tags)
	if err != nil {
		r.logger.Error("create note failed", "user_id", user.ID, "err", err)
		writeInternalError(w)
		return
	}
	r.logger.Info("note created", "user_id", user.ID, "note_id", note.ID)
	writeJSON(w, http.StatusOK, note)
}

func (r *Router) handleGetNote(w http.ResponseWriter, req *http.Request) {
	user := currentUser(req.Context())
	noteID, ok := notePathID(w, req)
	if !ok {
		return
	}
	note, err := r.services.Notes.Get(req.Context(), noteID, user.ID)
	if err != nil {
		r.writeNoteError(w, "get", noteID, user.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (r *Router) handleUpdateNote(w http.ResponseWriter, req *http.Request) {
	user := currentUser(req.Context())
	noteID, ok := notePathID(w, req)
	if !ok {
		return
	}
	var body noteRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if details := body.validate(); details != nil {
		writeValidationErrors(w, details)
		return
	}
	note, err := r.services.Notes.Update(req.Context(), noteID, user.ID, *body.Title, *body.Content, body.Tags)
	if err != nil {
		r.writeNoteError(w, "update", noteID, user.ID, err)
		return
	}
	r.logger.Info("note updated", "user_id", user.ID, "note_id", note.ID)
	writeJSON(w, http.StatusOK, note)
}

func (r *Router) handleDeleteNote(w http.ResponseWriter, req *http.Request) {
	user := currentUser(req.Context())
	noteID, ok := notePathID(w, req)
	if !ok {
		return
	}
	if _, err := r.services.Notes.Delete(req.Context(), noteID, user.ID); err != nil {
		r.writeNoteError(w, "delete", noteID, user.ID, err)
		return
	}
	r.logger.Info("note deleted", "user_id", user.ID, "note_id", noteID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// writeNoteError maps a store miss to 404. A note owned by someone else
// reports not-found as well, never forbidden.
func (r *Router) writeNoteError(w http.ResponseWriter, op string, noteID, userID int64, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		r.logger.Warn("note not found", "op", op, "note_id", noteID, "user_id", userID)
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	r.logger.Error("note operation failed", "op", op, "note_id", noteID, "user_id", userID, "err", err)
	writeInternalError(w)
}

func notePathID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		writeValidationErrors(w, []fieldError{{Field: "id", Message: "must be an integer"}})
		return 0, false
	}
	return id, true
}

func queryInt(req *http.Request, key string, def int) int {
	v := req.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
