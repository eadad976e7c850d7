package response

import (
	"log/slog"
	"net/http"

	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		slog.Error("internal error",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// BindError renders a request binding failure as a 400.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}
