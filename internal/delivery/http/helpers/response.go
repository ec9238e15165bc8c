package helpers

import (
	"encoding/json"
	"net/http"

	"eventboard/internal/domain"
)

// GenericServerError is the client-facing message for storage failures. The
// underlying cause is logged server-side and never echoed to the client.
const GenericServerError = "internal server error"

// EventsResponse is the body for GET /events.
// swagger:model EventsResponse
type EventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// ErrorResponse is the body for every non-2xx API response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorResponse with the given message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}
