package controllers_fx

import (
	"concierge/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewConciergeController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewExportController),
	fx.Provide(controllers.NewWSController))
