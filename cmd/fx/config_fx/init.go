package config_fx

import (
	"concierge/internal/infra"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	infra.LoadConfig,
	infra.NewTimezoneResolver)
