package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/metrics"
	"github.com/polkiloo/cleanorder/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Facade  handlers.ClientFacade
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func newEngine(p engineParams) *gin.Engine {
	return Setup(p.Facade, p.Metrics.Handler(), p.Logger)
}
