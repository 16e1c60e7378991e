package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

type Error struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Fields  []domain.ValidationError `json:"fields,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

// FailValidation answers 422 with every offending field.
func FailValidation(w http.ResponseWriter, issues domain.ValidationErrors, requestID string) {
	WriteJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Error: &Error{
			Code:    "validation_error",
			Message: "payload validation failed",
			Fields:  issues,
		},
		RequestID: requestID,
	})
}
