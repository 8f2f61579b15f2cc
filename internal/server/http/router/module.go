package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/nhoyhub/esignhub/internal/app"
	"github.com/nhoyhub/esignhub/internal/config"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade *app.StoreFacade
	Config *config.API
	Logger *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Config.AdminToken, p.Config.UploadsDir, p.Logger)
}
