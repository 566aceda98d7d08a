package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/store"
)

type errorResponse struct {
	Code   errors.Code `json:"code,omitempty"`
	Error  string      `json:"error,omitempty"`
	Errors []string    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, store.ErrTooLarge):
		return http.StatusInsufficientStorage
	}
	if _, ok := errors.AsInput(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidCapacity:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRef, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeRenderNotFound, errors.ErrCodePageNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError sends err as JSON. Validation failures list every message
// under "errors"; internal errors are not echoed to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Code: errors.GetCode(err)}
	switch {
	case status == http.StatusRequestEntityTooLarge:
		resp.Error = "request body too large"
	case status == http.StatusInsufficientStorage:
		s.cfg.Logger.Warn("render not stored", "path", r.URL.Path, "err", err)
		resp.Error = "render too large to store; request fewer formats or a lower scale"
	case status >= http.StatusInternalServerError:
		s.cfg.Logger.Error("request failed", "path", r.URL.Path, "err", err)
		resp.Error = "internal error"
	default:
		if ie, ok := errors.AsInput(err); ok {
			resp.Errors = ie.Messages
		} else {
			resp.Error = errors.UserMessage(err)
		}
	}
	writeJSON(w, status, resp)
}
