package memcache_fx

import (
	"time"

	mem "concierge/pkg/memcache"

	"go.uber.org/fx"
)

const trackedDownloadTTL = 24 * time.Hour

var Module = fx.Provide(provideTrackedDownloads)

func provideTrackedDownloads() mem.TrackedDownloadStore {
	return mem.NewTrackedDownloads(trackedDownloadTTL)
}
