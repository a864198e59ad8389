package httputil

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every successful response body uses.
// Success is derived from the status code, never set independently.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// APIError is the envelope every failure uses, regardless of error kind.
type APIError struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Errors     []string    `json:"errors"`
	Data       interface{} `json:"data"`
}

// WriteJSON writes a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			// Headers already sent, nothing sensible left to do.
			return
		}
	}
}

// WriteData wraps data in the standard success envelope.
func WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, APIResponse{
		StatusCode: status,
		Success:    status < 400,
		Message:    message,
		Data:       data,
	})
}

// WriteError writes the fixed error envelope: message text only, no stack
// detail, data always null.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIError{
		StatusCode: status,
		Success:    false,
		Message:    message,
		Errors:     []string{},
		Data:       nil,
	})
}

// Common error response helpers

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
