package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/middleware"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, types.Response{Success: true, Data: data})
}

// respondError maps service errors to statuses. Unexpected errors are attached
// to the context for the logger and reporter and hidden from the client.
func respondError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, types.Response{Success: false, Error: message})
}

func errorStatus(err error) (int, string) {
	var verr *service.ValidationError
	var genErr *service.GeneratorError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "access to another user's data is forbidden"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &genErr):
		return http.StatusBadGateway, genErr.Message
	case errors.Is(err, service.ErrGeneratorUnavailable), errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func bindError(err error) error {
	return service.NewValidationError("body", err.Error())
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, service.NewValidationError(name, "must be a valid id")
	}
	return id, nil
}

// actingUser resolves the user a request acts on. An explicit id must match the token.
func actingUser(c *gin.Context, explicit uuid.UUID) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return uuid.Nil, service.ErrUnauthorized
	}
	if explicit != uuid.Nil && explicit != userID {
		return uuid.Nil, service.ErrForbidden
	}
	return userID, nil
}
