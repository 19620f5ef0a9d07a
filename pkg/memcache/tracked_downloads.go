package mem

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TrackedDownloadStore remembers which photo download notifications were already sent.
type TrackedDownloadStore interface {
	// MarkIfNew records downloadURL and reports whether it had not been seen within the ttl.
	MarkIfNew(downloadURL string) bool
	Forget(downloadURL string)
}

type TrackedDownloads struct {
	cache *gocache.Cache
}

func NewTrackedDownloads(ttl time.Duration) *TrackedDownloads {
	return &TrackedDownloads{cache: gocache.New(ttl, 2*ttl)}
}

func (s *TrackedDownloads) MarkIfNew(downloadURL string) bool {
	if downloadURL == "" {
		return false
	}
	// Add fails when a live entry already exists.
	return s.cache.Add(downloadURL, struct{}{}, gocache.DefaultExpiration) == nil
}

func (s *TrackedDownloads) Forget(downloadURL string) {
	s.cache.Delete(downloadURL)
}
