package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err with the status its code maps to. Errors without a
// code are reported as internal errors without their message.
func writeError(w http.ResponseWriter, err error) {
	code := cerrors.GetCode(err)
	if code == "" {
		writeErrorStatus(w, http.StatusInternalServerError, string(cerrors.ErrCodeInternal), "internal error")
		return
	}
	writeErrorStatus(w, statusFor(code), string(code), cerrors.UserMessage(err))
}

func writeErrorStatus(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code cerrors.Code) int {
	switch code {
	case cerrors.ErrCodeInvalidInput, cerrors.ErrCodeInvalidThreshold, cerrors.ErrCodeInvalidOptions,
		cerrors.ErrCodeInvalidFormat, cerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case cerrors.ErrCodeNotFound, cerrors.ErrCodeRunNotFound, cerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case cerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func notFound(format string, args ...any) error {
	return cerrors.New(cerrors.ErrCodeNotFound, "%s", fmt.Sprintf(format, args...))
}
