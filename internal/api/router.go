package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// HealthChecker is implemented by backing stores that can be pinged
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. store may be nil when
// preferences are not backed by a database.
func NewRouter(services *service.Services, cfg *config.Config, store HealthChecker, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	contentHandler := NewContentHandler(services, cfg, log)
	preferenceHandler := NewPreferenceHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck(services, store))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/home", contentHandler.Home)

		posts := v1.Group("/posts")
		{
			posts.GET("", contentHandler.ListPosts)
			posts.GET("/:slug", contentHandler.GetPost)
			posts.POST("/:slug/comments", contentHandler.CreateComment)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", contentHandler.ListCategories)
			categories.GET("/:slug/posts", contentHandler.ListCategoryPosts)
		}

		v1.GET("/search", contentHandler.Search)

		prefs := v1.Group("/preferences")
		{
			prefs.POST("", preferenceHandler.CreateClient)
			prefs.GET("/:client_id", preferenceHandler.GetPreferences)
			prefs.DELETE("/:client_id", preferenceHandler.ClearPreferences)
			prefs.GET("/:client_id/theme", preferenceHandler.GetTheme)
			prefs.PUT("/:client_id/theme", preferenceHandler.SetTheme)
			prefs.DELETE("/:client_id/theme", preferenceHandler.ResetTheme)
			prefs.GET("/:client_id/newsletter", preferenceHandler.GetNewsletter)
			prefs.PUT("/:client_id/newsletter", preferenceHandler.SetNewsletter)
			prefs.DELETE("/:client_id/newsletter", preferenceHandler.ResetNewsletter)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(services *service.Services, store HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":         "healthy",
			"timestamp":      time.Now().Format(time.RFC3339),
			"service":        "blog-content-api",
			"default_source": services.Content.DefaultSource(),
		}

		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := store.HealthCheck(ctx); err != nil {
				body["status"] = "degraded"
				body["database"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["database"] = "ok"
		}

		c.JSON(http.StatusOK, body)
	}
}

// requestIDMiddleware propagates or assigns a request id
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("request_id", c.GetString("request_id")).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
