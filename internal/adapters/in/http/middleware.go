package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	requestIDMaxLen = 64
)

// RequestID берет X-Request-ID из запроса или генерирует новый
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		ctx.Set(requestIDKey, rid)
		ctx.Header(requestIDHeader, rid)

		ctx.Next()
	}
}

// RequestLogger пишет по событию на каждый запрос, уровень зависит от статуса ответа
func RequestLogger(logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		status := ctx.Writer.Status()
		fields := out.LogFields{
			"status":    status,
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
			"query":     ctx.Request.URL.RawQuery,
			"ip":        ctx.ClientIP(),
			"latencyMs": time.Since(start).Milliseconds(),
			"requestId": ctx.GetString(requestIDKey),
		}
		if len(ctx.Errors) > 0 {
			fields["errors"] = ctx.Errors.ByType(gin.ErrorTypePrivate).String()
		}

		switch {
		case status >= 500:
			logger.Error("http.request.failed", fields)
		case status >= 400:
			logger.Warn("http.request.rejected", fields)
		default:
			logger.Info("http.request.done", fields)
		}
	}
}

func basicAuth(clients []config.ConfigBasicClient) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !authorized(clients, username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func authorized(clients []config.ConfigBasicClient, username, password string) bool {
	ok := false
	for _, client := range clients {
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username))
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password))
		if userMatch&passMatch == 1 {
			ok = true
		}
	}
	return ok
}
