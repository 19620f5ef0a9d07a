package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"concierge/internal/infra"
	"concierge/internal/models/plan_models"
	"concierge/pkg/utils"

	ics "github.com/arran4/golang-ical"
)

const calendarEventDuration = 2 * time.Hour

type CalendarServiceInterface interface {
	// ExportICS renders one event per timed segment. It returns ErrNoCalendarEvents when no
	// segment has a start time.
	ExportICS(plan *plan_models.Plan) ([]byte, int, error)
}

type CalendarService struct {
	tz  infra.TimezoneResolver
	now func() time.Time
}

func NewCalendarService(tz infra.TimezoneResolver) CalendarServiceInterface {
	return &CalendarService{tz: tz, now: time.Now}
}

func (s *CalendarService) ExportICS(plan *plan_models.Plan) ([]byte, int, error) {
	if plan == nil {
		return nil, 0, utils.ErrNoPlan
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Luxe Concierge//Itinerary//EN")
	if len(plan.Trip.Destinations) > 0 {
		cal.SetName("Trip to " + strings.Join(plan.Trip.Destinations, ", "))
	}

	events := 0
	for _, ref := range plan.FlatSegments() {
		seg := ref.Segment
		if strings.TrimSpace(seg.Start) == "" {
			continue
		}
		loc := time.UTC
		if seg.LocationCoords != nil && s.tz != nil {
			loc = s.tz.Locate(seg.LocationCoords.Lat, seg.LocationCoords.Lon)
		}
		start, err := utils.CombineDateAndClock(ref.Date, seg.Start, loc)
		if err != nil {
			log.Printf("Skipping calendar event for segment %s: %v", seg.ID, err)
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@luxe-concierge", seg.ID))
		event.SetDtStampTime(s.now())
		event.SetStartAt(start)
		event.SetEndAt(start.Add(calendarEventDuration))
		event.SetSummary(seg.Title)
		if seg.Narrative != "" {
			event.SetDescription(seg.Narrative)
		}
		if seg.Location != "" {
			event.SetLocation(seg.Location)
		}
		events++
	}
	if events == 0 {
		return nil, 0, utils.ErrNoCalendarEvents
	}
	return []byte(cal.Serialize()), events, nil
}
