package services

import (
	"fmt"
	"sync"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
	"concierge/internal/models/request_models"
	"concierge/pkg/utils"

	"github.com/samber/lo"
)

// PlanStore holds the current plan and the images aligned with it. Images are nil while unknown
// (loading) and an empty slice once fetched with no results. Every change of the plan bumps the
// generation so late image results for an older plan can be recognised.
type PlanStore struct {
	mu         sync.RWMutex
	plan       *plan_models.Plan
	images     []chat_models.ItineraryImage
	generation uint64
}

func NewPlanStore() *PlanStore {
	return &PlanStore{}
}

// ReplacePlan stores a copy of p and invalidates the images.
func (s *PlanStore) ReplacePlan(p *plan_models.Plan) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = p.Clone()
	s.images = nil
	s.generation++
	return s.generation
}

func (s *PlanStore) Clear() {
	s.ReplacePlan(nil)
}

// ApplyReorder moves one segment. Days left empty by the move are dropped.
func (s *PlanStore) ApplyReorder(req request_models.ReorderRequest) (*plan_models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return nil, utils.ErrNoPlan
	}
	days := s.plan.Days
	if req.FromDay < 0 || req.FromDay >= len(days) {
		return nil, fmt.Errorf("%w: source day %d", utils.ErrInvalidReorder, req.FromDay)
	}
	if req.FromSegment < 0 || req.FromSegment >= len(days[req.FromDay].Segments) {
		return nil, fmt.Errorf("%w: source segment %d", utils.ErrInvalidReorder, req.FromSegment)
	}
	if req.ToDay < 0 || req.ToDay >= len(days) {
		return nil, fmt.Errorf("%w: target day %d", utils.ErrInvalidReorder, req.ToDay)
	}
	insertAt := len(days[req.ToDay].Segments)
	if req.ToSegment != nil {
		insertAt = *req.ToSegment
		if insertAt < 0 || insertAt > len(days[req.ToDay].Segments) {
			return nil, fmt.Errorf("%w: target segment %d", utils.ErrInvalidReorder, insertAt)
		}
	}

	src := days[req.FromDay].Segments
	moved := src[req.FromSegment]
	days[req.FromDay].Segments = append(append([]plan_models.Segment{}, src[:req.FromSegment]...), src[req.FromSegment+1:]...)

	if req.FromDay == req.ToDay && req.FromSegment < insertAt {
		insertAt--
	}
	dst := days[req.ToDay].Segments
	merged := make([]plan_models.Segment, 0, len(dst)+1)
	merged = append(merged, dst[:insertAt]...)
	merged = append(merged, moved)
	merged = append(merged, dst[insertAt:]...)
	days[req.ToDay].Segments = merged

	s.plan.Days = lo.Filter(days, func(d plan_models.Day, _ int) bool { return len(d.Segments) > 0 })
	s.images = nil
	s.generation++
	return s.plan.Clone(), nil
}

// Plan returns a copy of the current plan, or nil.
func (s *PlanStore) Plan() *plan_models.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

func (s *PlanStore) HasPlan() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan != nil
}

// Images returns the image list and whether it is known. known is false while loading.
func (s *PlanStore) Images() (images []chat_models.ItineraryImage, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.images == nil {
		return nil, false
	}
	return append([]chat_models.ItineraryImage{}, s.images...), true
}

// Generation identifies the current plan revision together with a copy of it.
func (s *PlanStore) Generation() (uint64, *plan_models.Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, s.plan.Clone(), s.images == nil
}

// SetImages applies images fetched for generation gen. It is a no-op when the plan has changed
// since, or when images for the current plan are already known.
func (s *PlanStore) SetImages(gen uint64, images []chat_models.ItineraryImage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.images != nil {
		return false
	}
	if images == nil {
		images = []chat_models.ItineraryImage{}
	}
	s.images = images
	return true
}
