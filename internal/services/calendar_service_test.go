package services

import (
	"bytes"
	"testing"
	"time"

	"concierge/internal/models/plan_models"
	"concierge/pkg/utils"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedZone struct {
	loc   *time.Location
	calls int
}

func (z *fixedZone) Locate(lat, lon float64) *time.Location {
	z.calls++
	return z.loc
}

func newTestCalendar(tz *fixedZone) *CalendarService {
	return &CalendarService{tz: tz, now: func() time.Time {
		return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func TestCalendarService_TimedSegmentsOnly(t *testing.T) {
	tz := &fixedZone{loc: time.FixedZone("WEST", 3600)}
	svc := newTestCalendar(tz)
	p := makePlan(3, 1)
	p.Days[0].Segments[0].Start = "15:00"
	p.Days[0].Segments[0].LocationCoords = &plan_models.Coordinates{Lat: 38.7, Lon: -9.1}
	p.Days[0].Segments[1].Start = "sometime after lunch"
	p.Days[1].Segments[0].Start = "9:30 AM"

	out, count, err := svc.ExportICS(p)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, tz.calls)

	cal, err := ics.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	first, second := events[0], events[1]
	assert.Equal(t, "d0-s0@luxe-concierge", first.Id())
	start, err := first.GetStartAt()
	require.NoError(t, err)
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 5, 1, 14, 0, 0, 0, time.UTC)), start.String())
	assert.Equal(t, 2*time.Hour, end.Sub(start))

	start, err = second.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)), start.String())
	assert.Contains(t, string(out), "SUMMARY:Segment 1.0")
	assert.Contains(t, string(out), "Trip to Lisbon")
}

func TestCalendarService_NoTimedSegments(t *testing.T) {
	svc := newTestCalendar(&fixedZone{loc: time.UTC})

	_, count, err := svc.ExportICS(makePlan(2, 2))

	assert.ErrorIs(t, err, utils.ErrNoCalendarEvents)
	assert.Zero(t, count)
}

func TestCalendarService_NoPlan(t *testing.T) {
	_, _, err := newTestCalendar(&fixedZone{loc: time.UTC}).ExportICS(nil)
	assert.ErrorIs(t, err, utils.ErrNoPlan)
}
