package auth

import (
	"github.com/polkiloo/cleanorder/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(NewTokenHolder),
	fx.Provide(newTokenSealer),
)

type sealerParams struct {
	fx.In

	Config *config.Config
}

func newTokenSealer(p sealerParams) Sealer {
	return NewSecretboxSealer(p.Config.TokenSecret)
}
