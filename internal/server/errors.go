package server

import (
	"net/http"

	"github.com/jonathan/resume-matcher/internal/service"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error      string       `json:"error"`
	Kind       service.Kind `json:"kind"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch service.Describe(err).Kind {
	case service.KindInvalidInput, service.KindConfiguration:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindTruthfulness, service.KindDataLoss:
		return http.StatusUnprocessableEntity
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
