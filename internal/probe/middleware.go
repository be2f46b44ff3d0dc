package probe

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hungle45/pcqueue/log"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// NewRequestLogger logs one entry per request through log.For. Requests whose
// path matches one of skipPaths are not logged.
func NewRequestLogger(skipPaths []string) gin.HandlerFunc {
	skipPatterns := lo.Map(skipPaths, func(pat string, _ int) *regexp.Regexp {
		return regexp.MustCompile(pat)
	})

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if lo.SomeBy(skipPatterns, func(r *regexp.Regexp) bool { return r.MatchString(path) }) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.String("query", c.Request.URL.RawQuery),
			log.String("handler", extractHandlerName(c.HandlerName())),
			log.String("client_ip", c.ClientIP()),
			log.Duration("latency", latency),
			log.Int("status", c.Writer.Status()),
			log.Int("response_size", c.Writer.Size()),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, log.Reflect("error", c.Errors.JSON()))
			log.For(c).Error(path, fields...)
		} else {
			log.For(c).Info(path, fields...)
		}
	}
}

func extractHandlerName(handlerName string) string {
	base := filepath.Base(handlerName)
	parts := strings.Split(base, ".")
	last := base
	if len(parts) > 0 {
		last = strings.TrimSuffix(parts[len(parts)-1], "-fm")
	}
	return last
}
