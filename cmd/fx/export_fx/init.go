package export_fx

import (
	"concierge/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	services.NewShareService,
	services.NewCalendarService,
	services.NewPDFService)
