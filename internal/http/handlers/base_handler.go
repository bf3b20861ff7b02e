// README: JSON response helpers and error-to-status mapping.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matchd/internal/modules/matching"
	"matchd/internal/types"
)

// parseIDParam reads gin's "id" path parameter as a types.ID.
func parseIDParam(c *gin.Context) (types.ID, error) {
	v, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return types.ID(v), nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeMatchingError maps matching's sentinel errors to HTTP statuses.
func writeMatchingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matching.ErrDuplicateID):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, matching.ErrUnknownID):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrNotOpen),
		errors.Is(err, matching.ErrNoOffer),
		errors.Is(err, matching.ErrPriceViolation):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, matching.ErrNotRunning):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
