package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
	customersvc "restaurant-ordering/internal/service/customer"
	"restaurant-ordering/internal/storage"
)

// writeError maps service errors to status codes. Unknown errors are logged
// and reported as 500 without detail.
func (h *handlers) writeError(c *gin.Context, err error) {
	var verr *configurator.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, contract.Error{
			Error:           "invalid selection",
			MissingRequired: verr.MissingRequired,
			Problems:        verr.Problems,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, contract.Error{Error: err.Error()})
	case errors.Is(err, customersvc.ErrInvalidCredentials), errors.Is(err, customersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, contract.Error{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, contract.Error{Error: "not found"})
	case errors.Is(err, domain.ErrNotOrderable), errors.Is(err, domain.ErrCartNotActive), errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, contract.Error{Error: err.Error()})
	case errors.Is(err, storage.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, contract.Error{Error: err.Error()})
	default:
		h.logger.Printf("http: %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, contract.Error{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, contract.Error{Error: msg})
}
