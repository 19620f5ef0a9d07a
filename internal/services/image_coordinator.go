package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
)

const imageFetchTimeout = 20 * time.Second

// ImageCoordinator keeps the image list of the PlanStore in step with its plan. One batch search is
// issued per plan generation; results are mapped onto segments by position.
type ImageCoordinator struct {
	store    *PlanStore
	photos   PhotoServiceInterface
	onUpdate func(images []chat_models.ItineraryImage)

	mu       sync.Mutex
	inFlight map[uint64]bool
	wg       sync.WaitGroup
}

func NewImageCoordinator(store *PlanStore, photos PhotoServiceInterface) *ImageCoordinator {
	return &ImageCoordinator{
		store:    store,
		photos:   photos,
		inFlight: make(map[uint64]bool),
	}
}

// OnUpdate registers fn to be called whenever a new image list is applied.
func (c *ImageCoordinator) OnUpdate(fn func(images []chat_models.ItineraryImage)) {
	c.onUpdate = fn
}

// Refresh starts enrichment for the current plan if the view shows images and they are unknown.
// It returns true when a fetch was started or an empty list was applied.
func (c *ImageCoordinator) Refresh(state chat_models.AppState) bool {
	if state != chat_models.StateDetailedItinerary && state != chat_models.StateConfirmation {
		return false
	}
	gen, plan, loading := c.store.Generation()
	if plan == nil || !loading {
		return false
	}

	count := plan.SegmentCount()
	if count == 0 {
		c.apply(gen, []chat_models.ItineraryImage{})
		return true
	}

	c.mu.Lock()
	if c.inFlight[gen] {
		c.mu.Unlock()
		return false
	}
	c.inFlight[gen] = true
	c.mu.Unlock()

	query := ImageQuery(plan)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.inFlight, gen)
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), imageFetchTimeout)
		defer cancel()

		images, err := c.photos.SearchPhotos(ctx, query, count)
		if err != nil {
			log.Printf("image enrichment for %q failed: %v", query, err)
			images = []chat_models.ItineraryImage{}
		}
		if len(images) > count {
			images = images[:count]
		}
		c.apply(gen, images)
	}()
	return true
}

// Wait blocks until all started fetches have finished.
func (c *ImageCoordinator) Wait() {
	c.wg.Wait()
}

func (c *ImageCoordinator) apply(gen uint64, images []chat_models.ItineraryImage) {
	if !c.store.SetImages(gen, images) {
		log.Printf("discarding images for stale plan generation %d", gen)
		return
	}
	if c.onUpdate != nil {
		c.onUpdate(images)
	}
}

// ImageQuery builds the photo search term for a plan from its destinations.
func ImageQuery(p *plan_models.Plan) string {
	dests := make([]string, 0, len(p.Trip.Destinations))
	for _, d := range p.Trip.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			dests = append(dests, d)
		}
	}
	if len(dests) == 0 {
		return "luxury travel"
	}
	return strings.Join(dests, " ") + " travel"
}

// ImageForSegment returns the image at the segment's flattened position, if any.
func ImageForSegment(p *plan_models.Plan, images []chat_models.ItineraryImage, dayIndex, segmentIndex int) (chat_models.ItineraryImage, bool) {
	i := p.FlatIndexOf(dayIndex, segmentIndex)
	if i < 0 || i >= len(images) {
		return chat_models.ItineraryImage{}, false
	}
	return images[i], true
}
