// Package router sets up the HTTP routes for the library API server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/libraryual/internal/http/handler"
	"github.com/roguepikachu/libraryual/internal/http/middleware"
	"github.com/roguepikachu/libraryual/pkg"
)

// NewRouter builds the engine with the middleware chain and every route.
// A nil metrics disables request observation and the /metrics endpoint.
func NewRouter(authors *handler.AuthorHandler, health *handler.HealthHandler, metrics *middleware.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RequestLogger(), middleware.Recovery())
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET(pkg.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.NewError("not_found", "route not found"))
	})

	r.GET(pkg.HealthCheckPath, handler.Health)
	if health != nil {
		r.GET(pkg.LivenessPath, health.Liveness)
		r.GET(pkg.ReadinessPath, health.Readiness)
	}

	g := r.Group(pkg.AuthorsPath)
	g.GET("", authors.List)
	g.POST("", authors.Create)
	g.GET("/:id", authors.Get)
	g.PUT("/:id", authors.Update)
	g.DELETE("/:id", authors.Delete)
	return r
}
