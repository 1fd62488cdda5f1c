package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape shared by every endpoint.
// Data is always present (null on failures unless the error carries
// auxiliary data, e.g. the id of a conflicting invoice).
type Envelope struct {
	Error      bool                `json:"error"`
	Message    string              `json:"message"`
	Data       any                 `json:"data"`
	Errors     map[string][]string `json:"errors,omitempty"`
	StatusCode int                 `json:"status_code"`
}

// ListEnvelope extends the envelope with pagination metadata for list
// reads. Next and Previous are rendered as null when absent.
type ListEnvelope struct {
	Error      bool    `json:"error"`
	Message    string  `json:"message"`
	Data       any     `json:"data"`
	Count      int64   `json:"count"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	StatusCode int     `json:"status_code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"error":true,"message":"encode error","data":null,"status_code":500}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Success writes a non-error envelope.
func Success(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Message: message, Data: data, StatusCode: status})
}

// Fail writes an error envelope. errs carries field-keyed messages when the
// failure is field-level; data carries auxiliary error data when present.
func Fail(w http.ResponseWriter, status int, message string, errs map[string][]string, data any) {
	writeJSON(w, status, Envelope{Error: true, Message: message, Data: data, Errors: errs, StatusCode: status})
}

// List writes a success envelope with pagination metadata.
func List(w http.ResponseWriter, message string, data any, count int64, next, previous *string) {
	writeJSON(w, http.StatusOK, ListEnvelope{
		Message:    message,
		Data:       data,
		Count:      count,
		Next:       next,
		Previous:   previous,
		StatusCode: http.StatusOK,
	})
}
