package rest

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func newResponseError(err error) ResponseError {
	return ResponseError{Message: domain.Message(err, "")}
}

// getStatusCode maps usecase and gateway errors onto HTTP status codes
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInternalServerError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
