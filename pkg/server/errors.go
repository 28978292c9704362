package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/middleware"
)

// errorBody is the JSON form of a failed request.
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// errorBodyOf maps err to its status and JSON body. Coded errors are the
// client's fault.
func errorBodyOf(err error) (int, errorBody) {
	if he, ok := errors.As(err); ok && he.Code != "" {
		return http.StatusBadRequest, errorBody{Code: he.Code, Message: he.Error()}
	}
	return http.StatusInternalServerError, errorBody{Message: http.StatusText(http.StatusInternalServerError)}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorBodyOf(err)
	s.recordError(r, err)
	writeJSON(w, status, body)
}

// recordError logs err and counts it against its code.
func (s *Server) recordError(r *http.Request, err error) {
	code := errors.CodeOf(err)
	s.metrics.RecordRenderError(code)
	middleware.RecordError(r.Context(), err)
	if code == "" {
		s.log(r).Error("request failed", logging.Error(err))
		return
	}
	s.log(r).Debug("request rejected", logging.Error(err), zap.String(logging.FieldRoute, r.URL.Path))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// malformed reports an undecodable request body.
func malformed(detail string, err error) error {
	e := errors.New("H030").WithDetail(detail)
	if err != nil {
		e = e.Wrap(err)
	}
	return e
}
