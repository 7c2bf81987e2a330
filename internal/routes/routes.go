package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/handlers"
)

// Middleware groups the per-route middleware built by the server.
type Middleware struct {
	Authenticate gin.HandlerFunc
	RateLimit    gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, mw Middleware, authHandler *handlers.AuthHandler, convertHandler *handlers.ConvertHandler) {
	api := router.Group("/api/v1")

	authRoutes := NewAuthRoutes(authHandler, mw.Authenticate)
	authRoutes.RegisterRoutes(api)

	convertRoutes := NewConvertRoutes(convertHandler, mw.Authenticate, mw.RateLimit)
	convertRoutes.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", health)
}

// RegisterFrontend serves the browser client from dir, or answers the health
// check on / when there is no client to serve.
func RegisterFrontend(router *gin.Engine, dir string) {
	if dir == "" {
		router.GET("/", health)
		return
	}
	files := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
