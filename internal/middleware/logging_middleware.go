package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/mine-colony/internal/logging"
)

// RequestLogger снабжает каждый HTTP-запрос trace-ID и пишет краткие логи.
// Использует глобальный logging пакет (Info/Debug). Для запросов карты
// дополнительно логируются ключевые параметры области (layer/zoom),
// чтобы по логам было видно, какие слои и масштабы дергают клиенты.

type RequestLogger struct{}

func NewRequestLogger() *RequestLogger { return &RequestLogger{} }

// mapQueryTag вытаскивает из запроса параметры области для лога
func mapQueryTag(c *gin.Context) string {
	layer := c.Query("layer")
	if layer == "" {
		return ""
	}
	if zoom := c.Query("zoom"); zoom != "" {
		return " layer=" + layer + " zoom=" + zoom
	}
	return " layer=" + layer
}

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Пытаемся извлечь trace-id из OpenTelemetry, если уже создан.
		span := trace.SpanFromContext(c.Request.Context())
		var traceID string
		if span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		} else {
			traceID = uuid.NewString()
		}
		c.Set("trace_id", traceID)

		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		clientIP := c.ClientIP()

		logging.Info("[HTTP] ▶ %s %s%s ip=%s trace=%s", method, path, mapQueryTag(c), clientIP, traceID)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		size := c.Writer.Size()
		logging.Info("[HTTP] ◀ %s %s %d %dB %s trace=%s", method, path, status, size, latency, traceID)
	}
}
