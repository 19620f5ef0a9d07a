package photo_fx

import (
	"concierge/internal/infra"
	"concierge/internal/services"
	mem "concierge/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(ProvidePhotoService)

func ProvidePhotoService(cfg *infra.Config, tracked mem.TrackedDownloadStore) services.PhotoServiceInterface {
	return services.NewUnsplashClient(cfg, tracked)
}
