package promotion

import "go.uber.org/fx"

// Module provides the process-wide promotion cache.
var Module = fx.Provide(NewCache)
