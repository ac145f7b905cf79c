package httpapi

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeValidationErrors(w http.ResponseWriter, details []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":   "validation failed",
		"details": details,
	})
}

// decodeJSON reports a malformed body as a validation failure so all input
// errors share the 422 shape.
func decodeJSON(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeValidationErrors(w, []fieldError{{Field: "body", Message: "invalid json"}})
		return false
	}
	return true
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c credentialsRequest) validate() []fieldError {
	var details []fieldError
	if n := utf8.RuneCountInString(c.Username); n < 3 || n > 50 {
		details = append(details, fieldError{Field: "username", Message: "must be between 3 and 50 characters"})
	}
	if c.Password == "" {
		details = append(details, fieldError{Field: "password", Message: "field required"})
	}
	return details
}

// noteRequest uses pointers so an absent field can be told apart from an
// empty one, matching the required/optional split of the wire contract.
type noteRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}

func (n noteRequest) validate() []fieldError {
	var details []fieldError
	if n.Title == nil {
		details = append(details, fieldError{Field: "title", Message: "field required"})
	} else if l := utf8.RuneCountInString(*n.Title); l < 1 || l > 255 {
		details = append(details, fieldError{Field: "title", Message: "must be between 1 and 255 characters"})
	}
	if n.Content == nil {
		details = append(details, fieldError{Field: "content", Message: "field required"})
	}
	return details
}
