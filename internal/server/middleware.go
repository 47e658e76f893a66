package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amco/vacancies/internal/logger"
	"github.com/amco/vacancies/internal/metrics"
	"github.com/amco/vacancies/internal/session"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).Error(c.Errors.String())
		case status >= http.StatusBadRequest:
			entry.Warn("client error")
		default:
			entry.Debug("request handled")
		}
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).Errorf("panic recovered: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// requireAdmin checks the session flag set by a successful login.
// With enforce off every request passes, matching the historically open admin area.
func requireAdmin(enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enforce || session.FromContext(c).IsAdmin() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/lagin")
		c.Abort()
	}
}
