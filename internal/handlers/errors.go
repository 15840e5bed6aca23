package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// ErrorResponse is the error payload: a "detail" message plus optional field-level reasons.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v as the JSON response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError sends a JSON error response with a single "detail" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	JSON(w, status, ErrorResponse{Detail: message})
}

// JSONValidationError sends a JSON error response with "detail" and optional "fields" for field-level details.
// status is typically http.StatusUnprocessableEntity (422).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	JSON(w, status, ErrorResponse{Detail: message, Fields: fields})
}
