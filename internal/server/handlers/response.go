package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qahwaan-system/internal/pos"
)

const requestTimeout = 10 * time.Second

type APIError struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	Stage              string `json:"stage,omitempty"`
	CompensationFailed bool   `json:"compensation_failed,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses. Partial
// failures carry their stage and compensation outcome so operators can
// reconcile; they are never collapsed into a bare 500 message.
func respondError(c *gin.Context, err error) {
	var (
		ve *pos.ValidationError
		nf *pos.NotFoundError
		cf *pos.ConflictError
		pf *pos.PartialFailure
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, APIError{Message: ve.Reason})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, APIError{Message: nf.Error()})
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, APIError{Message: cf.Reason})
	case errors.As(err, &pf):
		c.JSON(http.StatusInternalServerError, APIError{
			Message:            pf.Error(),
			Stage:              pf.Stage,
			CompensationFailed: pf.CompensationFailed,
		})
	default:
		c.JSON(http.StatusInternalServerError, APIError{Message: err.Error()})
	}
}
