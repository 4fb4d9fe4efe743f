package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery renders a 500 error page for panics instead of dropping the connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("request_id", c.GetString("request_id")),
		)
		c.HTML(http.StatusInternalServerError, "error", gin.H{
			"Title":   "Error",
			"Status":  http.StatusInternalServerError,
			"Message": http.StatusText(http.StatusInternalServerError),
		})
		c.Abort()
	})
}

// ErrorHandler renders the error view for the last error a handler attached
// with c.Error. Errors exposing StatusCode and Text choose the status and the
// message shown; anything else is a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var se interface {
			StatusCode() int
			Text() string
		}
		if errors.As(err, &se) {
			status = se.StatusCode()
			message = se.Text()
		}
		if gin.Mode() == gin.DebugMode && status >= http.StatusInternalServerError {
			message = err.Error()
		}

		c.HTML(status, "error", gin.H{
			"Title":   "Error",
			"Status":  status,
			"Message": message,
		})
	}
}
