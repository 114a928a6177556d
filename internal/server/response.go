package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smokyabdulrahman/salah/internal/geo"
	"github.com/smokyabdulrahman/salah/internal/method"
)

// Error codes returned in the "code" field of error responses.
const (
	codeInvalidRequest       = "invalid_request"
	codeInvalidCoordinate    = "invalid_coordinate"
	codeInvalidConfiguration = "invalid_configuration"
	codeInternal             = "internal_error"
)

// errorResponse is the envelope for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestError is a client mistake found while reading the query string.
// err, when set, is the underlying config or core error.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, a ...any) error {
	return &requestError{msg: fmt.Sprintf(format, a...)}
}

// rejected marks err as caused by the request while keeping its sentinel.
func rejected(err error) error {
	return &requestError{msg: err.Error(), err: err}
}

// writeJSON marshals data and writes it with the given status. A marshal
// failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: errorDetail{Code: codeInternal, Message: "failed to marshal response"}})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError maps err onto a status and error code. Unknown errors become a
// 500 without exposing their message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("[server] request failed")
	}
	writeJSON(w, status, errorResponse{Error: detail})
}

// classify checks the core sentinels before the generic request errors, so a
// wrapped coordinate or configuration error keeps its own code.
func classify(err error) (int, errorDetail) {
	var reqErr *requestError
	var valErrs validator.ValidationErrors
	switch {
	case errors.Is(err, geo.ErrInvalidCoordinate):
		return http.StatusBadRequest, errorDetail{Code: codeInvalidCoordinate, Message: err.Error()}
	case errors.Is(err, method.ErrInvalidConfiguration):
		return http.StatusBadRequest, errorDetail{Code: codeInvalidConfiguration, Message: err.Error()}
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, errorDetail{Code: codeInvalidRequest, Message: reqErr.msg}
	case errors.As(err, &valErrs):
		code := codeInvalidRequest
		if coordinateOutOfRange(valErrs) {
			code = codeInvalidCoordinate
		}
		return http.StatusBadRequest, errorDetail{Code: code, Message: describe(valErrs)}
	default:
		return http.StatusInternalServerError, errorDetail{Code: codeInternal, Message: "an unexpected error occurred"}
	}
}

// coordinateOutOfRange reports whether lat or lon was given but fell outside
// its range. A missing coordinate stays a plain request error.
func coordinateOutOfRange(errs validator.ValidationErrors) bool {
	for _, fe := range errs {
		if (fe.Field() == "lat" || fe.Field() == "lon") && fe.Tag() != "required" {
			return true
		}
	}
	return false
}

// describe turns validator failures into "lat: required; days: lte=31".
func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fe.Field()+": "+rule)
	}
	return strings.Join(parts, "; ")
}
