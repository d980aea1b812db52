package xp

import "go.uber.org/fx"

// Module exposes the XP service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
