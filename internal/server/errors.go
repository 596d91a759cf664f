package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/stackforge/pkg/errors"
)

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRequest, errors.ErrCodeInvalidCoordinate, errors.ErrCodeInvalidFeature:
		return http.StatusBadRequest
	case errors.ErrCodeUnknownBuildSystem, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeResolution, errors.ErrCodeNetwork:
		if stderrors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("compose failed", "id", id, "err", err)
	}
	writeJSON(w, status, map[string]errorBody{"error": {
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: id,
	}})
}
