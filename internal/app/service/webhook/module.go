package webhook

import "go.uber.org/fx"

// Module exposes the webhook dispatcher and its delivery log via Fx.
var Module = fx.Options(
	fx.Provide(NewLogService),
	fx.Provide(NewHandler),
)
