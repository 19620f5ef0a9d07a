package services

import (
	"testing"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
	"concierge/internal/models/request_models"
	"concierge/pkg/utils"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func dayIDs(p *plan_models.Plan) [][]string {
	return lo.Map(p.Days, func(d plan_models.Day, _ int) []string {
		return lo.Map(d.Segments, func(s plan_models.Segment, _ int) string { return s.ID })
	})
}

func TestPlanStore_MoveFirstSegmentToEndOfNextDay(t *testing.T) {
	for _, counts := range [][]int{{1, 2}, {3, 2}, {2, 0, 1}} {
		store := NewPlanStore()
		store.ReplacePlan(makePlan(counts...))
		before := store.Plan()
		n := before.SegmentCount()

		after, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 0, ToDay: 1})
		require.NoError(t, err)

		assert.Equal(t, n, after.SegmentCount())
		assert.ElementsMatch(t, before.SegmentIDs(), after.SegmentIDs())
		assert.Equal(t, len(lo.Uniq(after.SegmentIDs())), n)

		if counts[0] == 1 {
			assert.NotContains(t, lo.Map(after.Days, func(d plan_models.Day, _ int) string { return d.Date }), before.Days[0].Date)
			last := after.Days[0].Segments
			assert.Equal(t, "d0-s0", last[len(last)-1].ID)
		} else {
			assert.Equal(t, before.Days[0].Date, after.Days[0].Date)
			last := after.Days[1].Segments
			assert.Equal(t, "d0-s0", last[len(last)-1].ID)
		}
	}
}

func TestPlanStore_DropsDaysLeftEmpty(t *testing.T) {
	store := NewPlanStore()
	store.ReplacePlan(makePlan(2, 0, 1))

	after, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 1, ToDay: 2})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"d0-s0"}, {"d2-s0", "d0-s1"}}, dayIDs(after))
}

func TestPlanStore_SameDayMoveAdjustsForRemoval(t *testing.T) {
	store := NewPlanStore()
	store.ReplacePlan(makePlan(4))

	after, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 0, ToDay: 0, ToSegment: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"d0-s1", "d0-s0", "d0-s2", "d0-s3"}}, dayIDs(after))

	after, err = store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 3, ToDay: 0, ToSegment: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"d0-s3", "d0-s1", "d0-s0", "d0-s2"}}, dayIDs(after))

	after, err = store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 1, ToDay: 0})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"d0-s3", "d0-s0", "d0-s2", "d0-s1"}}, dayIDs(after))
}

func TestPlanStore_CrossDayInsertAtIndex(t *testing.T) {
	store := NewPlanStore()
	store.ReplacePlan(makePlan(2, 2))

	after, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 1, FromSegment: 1, ToDay: 0, ToSegment: intPtr(1)})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"d0-s0", "d1-s1", "d0-s1"}, {"d1-s0"}}, dayIDs(after))
}

func TestPlanStore_ReorderInvalidatesImages(t *testing.T) {
	store := NewPlanStore()
	gen := store.ReplacePlan(makePlan(1, 1))
	require.True(t, store.SetImages(gen, []chat_models.ItineraryImage{{URL: "a"}, {URL: "b"}}))

	_, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 0, ToDay: 1})
	require.NoError(t, err)

	_, known := store.Images()
	assert.False(t, known)
	assert.False(t, store.SetImages(gen, []chat_models.ItineraryImage{{URL: "stale"}}))
}

func TestPlanStore_ReorderRejectsBadPositions(t *testing.T) {
	store := NewPlanStore()
	_, err := store.ApplyReorder(request_models.ReorderRequest{})
	assert.ErrorIs(t, err, utils.ErrNoPlan)

	store.ReplacePlan(makePlan(2, 1))
	bad := []request_models.ReorderRequest{
		{FromDay: 5, FromSegment: 0, ToDay: 0},
		{FromDay: 0, FromSegment: 9, ToDay: 0},
		{FromDay: 0, FromSegment: 0, ToDay: -1},
		{FromDay: 0, FromSegment: 0, ToDay: 1, ToSegment: intPtr(3)},
	}
	for _, req := range bad {
		_, err := store.ApplyReorder(req)
		assert.ErrorIs(t, err, utils.ErrInvalidReorder)
	}
	assert.Equal(t, [][]string{{"d0-s0", "d0-s1"}, {"d1-s0"}}, dayIDs(store.Plan()))
}

func TestPlanStore_ReplaceResetsImagesToLoading(t *testing.T) {
	store := NewPlanStore()
	gen := store.ReplacePlan(makePlan(1))
	require.True(t, store.SetImages(gen, nil))

	images, known := store.Images()
	assert.True(t, known)
	assert.Empty(t, images)

	store.ReplacePlan(makePlan(2))
	_, known = store.Images()
	assert.False(t, known)
}

func TestPlanStore_PlanIsACopy(t *testing.T) {
	store := NewPlanStore()
	store.ReplacePlan(makePlan(1))

	p := store.Plan()
	p.Days[0].Segments[0].Title = "changed"

	assert.Equal(t, "Segment 0.0", store.Plan().Days[0].Segments[0].Title)
}

func TestPlanStore_SameDayDropAtEndLandsLast(t *testing.T) {
	store := NewPlanStore()
	store.ReplacePlan(makePlan(3, 1))

	after, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 0, ToDay: 0})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"d0-s1", "d0-s2", "d0-s0"}, {"d1-s0"}}, dayIDs(after))

	after, err = store.ApplyReorder(request_models.ReorderRequest{FromDay: 0, FromSegment: 1, ToDay: 0, ToSegment: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"d0-s1", "d0-s0", "d0-s2"}, {"d1-s0"}}, dayIDs(after))
}

func TestPlanStore_ReplaceKeepsItsOwnCopy(t *testing.T) {
	store := NewPlanStore()
	p := makePlan(2, 1)
	store.ReplacePlan(p)

	_, err := store.ApplyReorder(request_models.ReorderRequest{FromDay: 1, FromSegment: 0, ToDay: 0, ToSegment: intPtr(0)})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"d0-s0", "d0-s1"}, {"d1-s0"}}, dayIDs(p))
	assert.Equal(t, [][]string{{"d1-s0", "d0-s0", "d0-s1"}}, dayIDs(store.Plan()))

	p.Days[0].Segments[0].Title = "changed"
	assert.Equal(t, "Segment 1.0", store.Plan().Days[0].Segments[0].Title)
}
