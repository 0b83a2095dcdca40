package metrics

import "go.uber.org/fx"

// Module provides process-wide counters.
var Module = fx.Provide(New)
