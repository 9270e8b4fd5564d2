package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/dental-crm/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors collapse to a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusInternalServerError
		switch de.Code {
		case usecase.CodeValidation:
			status = http.StatusBadRequest
		case usecase.CodePermissionDenied:
			status = http.StatusForbidden
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeStageConflict:
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: de.Message, Code: de.Code})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
