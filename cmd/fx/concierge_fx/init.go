package concierge_fx

import (
	"concierge/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(services.NewConciergeService)
