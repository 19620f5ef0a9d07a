package services

import (
	"math"

	"concierge/internal/models/plan_models"
	"concierge/internal/models/response_models"
	"concierge/pkg/utils"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders whole dollars with grouping, e.g. $12,345.
func FormatUSD(v float64) string {
	return usdPrinter.Sprintf("$%d", int64(math.Round(v)))
}

// BuildConfirmationSummary lists the segments that carry a cost and their total.
func BuildConfirmationSummary(p *plan_models.Plan) response_models.ConfirmationSummary {
	summary := response_models.ConfirmationSummary{Items: []response_models.BookableItem{}, Destinations: []string{}}
	if p == nil {
		summary.Total = FormatUSD(0)
		return summary
	}
	summary.Destinations = append(summary.Destinations, p.Trip.Destinations...)

	bookable := lo.Filter(p.FlatSegments(), func(r plan_models.SegmentRef, _ int) bool {
		return r.Segment.Cost() > 0
	})
	summary.Items = lo.Map(bookable, func(r plan_models.SegmentRef, _ int) response_models.BookableItem {
		return response_models.BookableItem{
			SegmentID: r.Segment.ID,
			Date:      r.Date,
			DayLabel:  utils.FormatDayHeading(r.Date),
			Title:     r.Segment.Title,
			Type:      string(r.Segment.Type),
			CostUSD:   r.Segment.Cost(),
			Cost:      FormatUSD(r.Segment.Cost()),
		}
	})
	summary.TotalUSD = lo.SumBy(summary.Items, func(i response_models.BookableItem) float64 { return i.CostUSD })
	summary.Total = FormatUSD(summary.TotalUSD)
	return summary
}

// BuildMapData returns one marker per segment with coordinates, plus their bounding box.
func BuildMapData(p *plan_models.Plan) response_models.MapData {
	data := response_models.MapData{Markers: []response_models.MapMarker{}}
	located := lo.Filter(p.FlatSegments(), func(r plan_models.SegmentRef, _ int) bool {
		return r.Segment.LocationCoords != nil
	})
	if len(located) == 0 {
		return data
	}
	bounds := &response_models.MapBounds{MinLat: 90, MinLon: 180, MaxLat: -90, MaxLon: -180}
	for _, r := range located {
		c := r.Segment.LocationCoords
		when := r.Segment.Start
		if when == "" {
			when = "All day"
		}
		data.Markers = append(data.Markers, response_models.MapMarker{
			SegmentID: r.Segment.ID,
			Title:     r.Segment.Title,
			Type:      string(r.Segment.Type),
			Date:      r.Date,
			Time:      when,
			Location:  r.Segment.Location,
			Lat:       c.Lat,
			Lon:       c.Lon,
		})
		bounds.MinLat = math.Min(bounds.MinLat, c.Lat)
		bounds.MaxLat = math.Max(bounds.MaxLat, c.Lat)
		bounds.MinLon = math.Min(bounds.MinLon, c.Lon)
		bounds.MaxLon = math.Max(bounds.MaxLon, c.Lon)
	}
	data.Bounds = bounds
	return data
}
