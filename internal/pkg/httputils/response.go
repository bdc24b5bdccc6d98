package httputils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tush00nka/group_chat/internal/model"
	"tush00nka/group_chat/internal/pkg/logging"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ResponseError(w http.ResponseWriter, errorCode int, errorMessage string) {
	ResponseJSON(w, errorCode, ErrorResponse{Error: errorMessage})
}

func ResponseJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger := logging.L()
		logger.Error().Err(err).Msg("failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// ResponseStatus writes a status code with an empty body.
func ResponseStatus(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

// DecodeJSON reads a JSON object from the request body into v. An empty body
// leaves v untouched.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return model.NewValidationError("Invalid request format")
	}
	return nil
}
