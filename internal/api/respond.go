package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/jsongraph/pkg/errors"
)

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAccessor, errors.ErrCodeInvalidMode:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedDocument, errors.ErrCodeUnresolvableAccessor:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func jsonError(w http.ResponseWriter, msg string, code errors.Code, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": string(code)})
}

// writeError reports err with its code and mapped status.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.log.Warn("request failed", "code", code, "error", err)
	}
	jsonError(w, errors.UserMessage(err), code, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
