package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akulinich/foodgram-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg}})
}

// RespondServiceError maps service sentinel errors to HTTP statuses;
// anything unrecognized is a generic server failure.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
