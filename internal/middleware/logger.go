package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sharecgt/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger logs one structured line per request once it has been served.
//
// Fields: request_id, method, route, path, status, latency_ms, bytes, client_ip
// and, when handlers attached any, errors. The level follows the status:
// 5xx is error, 4xx is warn, everything else info.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()

		ev := levelFor(status)
		ev.Str("request_id", requestID(c)).
			Str("method", method).
			Str("route", c.FullPath()).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP())
		if len(c.Errors) > 0 {
			ev.Strs("errors", c.Errors.Errors())
		}
		ev.Msg("http_request")
	}
}

func levelFor(status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.L().Error()
	case status >= http.StatusBadRequest:
		return logger.L().Warn()
	default:
		return logger.L().Info()
	}
}
