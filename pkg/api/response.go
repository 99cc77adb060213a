package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/menulink/pkg/errors"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Success: status < 400, Data: data}); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.Logger.Error("request failed", "err", err)
	}
	env := Envelope{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))}
	if rl, ok := errors.AsRateLimited(err); ok {
		env.Code = string(rl.Code())
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(env); encErr != nil {
		s.Logger.Error("encode error response", "err", encErr)
	}
}

// statusFor maps err to an HTTP status. An upstream 429 anywhere in the chain
// is reported as 429 even when wrapped as FETCH_FAILED.
func statusFor(err error) int {
	if _, ok := errors.AsRateLimited(err); ok {
		return http.StatusTooManyRequests
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScope, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeFetchFailed, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
