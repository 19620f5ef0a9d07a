package infra

import (
	"log"
	"time"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver maps coordinates to a location for calendar events.
type TimezoneResolver interface {
	Locate(lat, lon float64) *time.Location
}

type tzfResolver struct {
	finder tzf.F
}

// NewTimezoneResolver loads the bundled timezone polygons. On failure every lookup resolves to UTC.
func NewTimezoneResolver() TimezoneResolver {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		log.Printf("Error loading timezone data, calendar events fall back to UTC: %v", err)
		return &tzfResolver{}
	}
	return &tzfResolver{finder: finder}
}

func (r *tzfResolver) Locate(lat, lon float64) *time.Location {
	if r.finder == nil {
		return time.UTC
	}
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown timezone %q: %v", name, err)
		return time.UTC
	}
	return loc
}
