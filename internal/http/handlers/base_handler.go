// README: Shared handler helpers (JSON writing, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jetzy/internal/modules/travel"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTravelError(c *gin.Context, err error) {
	var perr *travel.ProviderError
	if errors.As(err, &perr) {
		writeError(c, http.StatusBadGateway, perr.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}
