package app

import (
	"github.com/astucieuxx/atenea-core/internal/middleware"
	"github.com/astucieuxx/atenea-core/internal/modules/analysis"
	"github.com/astucieuxx/atenea-core/internal/modules/arguments"
	"github.com/astucieuxx/atenea-core/internal/modules/ask"
	"github.com/astucieuxx/atenea-core/internal/modules/tesis"
	pkgredis "github.com/astucieuxx/atenea-core/internal/pkg/redis"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client, deps *domain) {
	api := a.router.Group("/api")
	if rc != nil {
		api.Use(middleware.RateLimit(rc.Raw()))
		api.Use(middleware.Idempotence(rc.Raw()))
	}

	tesis.NewHandler(deps.tesisRepo, a.db).RegisterRoutes(api)
	analysis.NewHandler(deps.analysisSvc).RegisterRoutes(api)
	ask.NewHandler(deps.askSvc).RegisterRoutes(api)
	arguments.NewHandler(deps.argSvc).RegisterRoutes(api)
	deps.systemH.RegisterRoutes(api)

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	a.router.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
}
