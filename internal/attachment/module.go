package attachment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/config"
)

// Module provides the image preparer.
var Module = fx.Provide(newPreparer)

func newPreparer(cfg *config.Config, logger *slog.Logger) *Preparer {
	return NewPreparer(cfg.ImageMaxDimension, cfg.ImageDir, logger)
}
