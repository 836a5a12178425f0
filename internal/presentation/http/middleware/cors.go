package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/config"
)

var defaultAllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"}

var defaultAllowHeaders = []string{
	"Accept",
	"Accept-Language",
	"Authorization",
	"Content-Language",
	"Content-Type",
	"Origin",
	"X-Requested-With",
	RequestIDHeader,
}

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// If no origins are configured, allow common development origins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}
	}

	// A wildcard origin cannot be combined with credentials.
	if contains(corsConfig.AllowOrigins, "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}

	// Browsers take "*" literally on credentialed requests, so spell the
	// lists out whenever credentials are on.
	if len(corsConfig.AllowMethods) == 0 ||
		(corsConfig.AllowCredentials && contains(corsConfig.AllowMethods, "*")) {
		corsConfig.AllowMethods = defaultAllowMethods
	}

	if len(corsConfig.AllowHeaders) == 0 ||
		(corsConfig.AllowCredentials && contains(corsConfig.AllowHeaders, "*")) {
		corsConfig.AllowHeaders = defaultAllowHeaders
	}

	return cors.New(corsConfig)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
