package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// SharerHeader carries the caller's user id, set by the upstream gateway.
	SharerHeader = "X-Sharer-User-Id"

	// RequestIDHeader propagates the per-request correlation id.
	RequestIDHeader = "X-Request-Id"

	userIDKey    = "sharerUserID"
	requestIDKey = "requestID"
)

// Recovery converts panics into a 500 response and logs the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// Logger logs one line per request with method, path, status and latency.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestID(c)),
		)
	}
}

// RequestID assigns a request id if the caller did not supply one and echoes
// it back on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the correlation id for the current request.
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Identity parses the X-Sharer-User-Id header and stores the caller's user id
// on the context. Handlers that require identity read it via CallerID; routes
// without the header still pass through so public endpoints keep working.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error": "invalid " + SharerHeader + " header",
				})
				return
			}
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// CallerID returns the authenticated caller's user id, or false if the
// identity header was absent.
func CallerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// RequireCallerID is CallerID plus the 400 response for a missing header.
// Returns false when the request has already been answered.
func RequireCallerID(c *gin.Context) (int64, bool) {
	id, ok := CallerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": SharerHeader + " header is required",
		})
		return 0, false
	}
	return id, true
}
