package middlewares

import (
	"time"

	"blogapp/global"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger logs one line per request with a request id that is also
// echoed back in the response headers.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()

		entry := global.Log.WithFields(logrus.Fields{
			"http.req.path":     ctx.Request.URL.Path,
			"http.req.method":   ctx.Request.Method,
			"http.req.id":       requestID,
			"http.resp.status":  ctx.Writer.Status(),
			"http.resp.bytes":   ctx.Writer.Size(),
			"http.resp.took_ms": time.Since(start).Milliseconds(),
		})
		if len(ctx.Errors) > 0 {
			entry.WithField("errors", ctx.Errors.String()).Warn("request complete")
			return
		}
		entry.Debug("request complete")
	}
}
