package stats

import "go.uber.org/fx"

// Module exposes the stats service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
