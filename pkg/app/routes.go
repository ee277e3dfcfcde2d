package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/docflex/gRPC-File-Processor/internal/api"
)

// SetupMappings registers the HTTP adapter's routes plus the Prometheus
// exposition endpoint onto the application's gin engine.
func SetupMappings(a *Application) {
	api.RegisterHTTP(a.Engine, a.Service)
	a.Engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.PromRegistry, promhttp.HandlerOpts{})))
}
