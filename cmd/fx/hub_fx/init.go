package hub_fx

import (
	"context"
	"log"

	"concierge/pkg/hub"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(ProvideHub),
	fx.Provide(func(h *hub.Hub) hub.Publisher { return h }),
)

func ProvideHub(lc fx.Lifecycle) *hub.Hub {
	h := hub.NewHub()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go h.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping websocket hub")
			h.Stop()
			return nil
		},
	})
	return h
}
