package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sharecgt/internal/domain/dto"
	"github.com/guttosm/sharecgt/internal/logger"
)

// ErrorHandler renders errors that handlers attached with c.Error but did not
// answer themselves.
//
// Behavior:
//   - Runs after the handler chain.
//   - Does nothing when no error was attached or a response was already written.
//   - Otherwise logs the last error and responds 500 with dto.ErrorResponse.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().
		Str("request_id", requestID(c)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("unhandled request error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the given
// status. err may be nil.
//
// Example:
//
//	middleware.AbortWithError(c, http.StatusBadRequest, "invalid run id", err)
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
