package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/pkg/response"
	"github.com/oksasatya/majesty-shop/pkg/validation"
)

// badPayload answers a request whose body could not be bound. Malformed JSON
// is a 400, a well-formed body failing its binding tags a 422.
func badPayload(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		status = http.StatusUnprocessableEntity
	}
	response.Error[any](c, status, "invalid payload", validation.ToDetails(err))
}

// writeError maps application errors onto the response envelope.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	var aerr *application.AuthError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, verr.Message, verr.Fields)
	case errors.As(err, &aerr):
		response.Error[any](c, http.StatusUnauthorized, aerr.Message, aerr.Fields)
	case errors.Is(err, application.ErrCatalogBusy), errors.Is(err, application.ErrLoadMoreUnavailable):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrCardNotFound), errors.Is(err, application.ErrNoSession):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
