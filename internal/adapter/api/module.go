package api

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/config"
	pkgAuth "github.com/polkiloo/cleanorder/internal/pkg/auth"
)

// Module exposes remote API client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Tokens *pkgAuth.TokenHolder
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.APIBaseURL, p.Config.APITimeout, p.Tokens, p.Logger)
}
