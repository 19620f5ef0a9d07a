package plan_models

import (
	"strings"

	"github.com/samber/lo"
)

type SegmentType string

const (
	SegmentStay       SegmentType = "stay"
	SegmentDine       SegmentType = "dine"
	SegmentExperience SegmentType = "experience"
	SegmentTransfer   SegmentType = "transfer"
	SegmentFlight     SegmentType = "flight"
	SegmentRail       SegmentType = "rail"
	SegmentHeli       SegmentType = "heli"
	SegmentYacht      SegmentType = "yacht"
	SegmentWellness   SegmentType = "wellness"
)

var knownSegmentTypes = []SegmentType{
	SegmentStay, SegmentDine, SegmentExperience, SegmentTransfer, SegmentFlight,
	SegmentRail, SegmentHeli, SegmentYacht, SegmentWellness,
}

// ParseSegmentType lower-cases t and falls back to experience for anything outside the known set.
func ParseSegmentType(t string) SegmentType {
	st := SegmentType(strings.ToLower(strings.TrimSpace(t)))
	if lo.Contains(knownSegmentTypes, st) {
		return st
	}
	return SegmentExperience
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Segment struct {
	ID             string       `json:"id"`
	Type           SegmentType  `json:"type"`
	Title          string       `json:"title"`
	Start          string       `json:"start,omitempty"`
	End            string       `json:"end,omitempty"`
	Location       string       `json:"location,omitempty"`
	LocationCoords *Coordinates `json:"location_coords,omitempty"`
	CostUSD        *float64     `json:"cost_usd,omitempty"`
	TaxesFeesUSD   *float64     `json:"taxes_fees_usd,omitempty"`
	CarbonKg       *float64     `json:"carbon_kg,omitempty"`
	SupplierID     string       `json:"supplier_id,omitempty"`
	Narrative      string       `json:"narrative,omitempty"`
}

// Cost returns the USD estimate, zero when absent.
func (s Segment) Cost() float64 {
	if s.CostUSD == nil {
		return 0
	}
	return *s.CostUSD
}

type Day struct {
	Date     string    `json:"date"`
	Segments []Segment `json:"segments"`
}

type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Party struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
}

type Trip struct {
	ID           string    `json:"id,omitempty"`
	Origin       string    `json:"origin,omitempty"`
	Destinations []string  `json:"destinations"`
	Dates        DateRange `json:"dates"`
	Party        Party     `json:"party"`
	BudgetTotal  *float64  `json:"budget_total,omitempty"`
	Status       string    `json:"status,omitempty"`
}

type Concept struct {
	Name        string   `json:"name"`
	Overview    string   `json:"overview,omitempty"`
	EstTotalUSD *float64 `json:"est_total_usd,omitempty"`
	EstCarbonKg *float64 `json:"est_carbon_kg,omitempty"`
	BudgetFit   string   `json:"budget_fit,omitempty"`
	Risks       []string `json:"risks,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

type Budget struct {
	TotalCapUSD *float64 `json:"total_cap_usd,omitempty"`
	EstTotalUSD *float64 `json:"est_total_usd,omitempty"`
	BufferUSD   *float64 `json:"buffer_usd,omitempty"`
}

type Upsell struct {
	SegmentRef    string   `json:"segment_ref,omitempty"`
	Label         string   `json:"label"`
	DeltaUSD      *float64 `json:"delta_usd,omitempty"`
	DeltaCarbonKg *float64 `json:"delta_carbon_kg,omitempty"`
	Rationale     string   `json:"rationale,omitempty"`
}

// Plan is the validated itinerary. Instances are only produced by FromJSON or Clone, so every
// slice is non-nil and segment IDs are unique across all days.
type Plan struct {
	Trip        Trip      `json:"trip"`
	Concepts    []Concept `json:"concepts"`
	Days        []Day     `json:"days"`
	Budget      Budget    `json:"budget"`
	Nudges      []string  `json:"nudges"`
	NextActions []string  `json:"next_actions"`
	Upsells     []Upsell  `json:"upsells"`
}

// SegmentRef locates a segment in day-then-segment order.
type SegmentRef struct {
	DayIndex     int
	SegmentIndex int
	FlatIndex    int
	Date         string
	Segment      Segment
}

// FlatSegments lists every segment across all days in day-then-segment order.
func (p *Plan) FlatSegments() []SegmentRef {
	if p == nil {
		return nil
	}
	refs := lo.FlatMap(p.Days, func(day Day, dayIndex int) []SegmentRef {
		return lo.Map(day.Segments, func(seg Segment, segIndex int) SegmentRef {
			return SegmentRef{DayIndex: dayIndex, SegmentIndex: segIndex, Date: day.Date, Segment: seg}
		})
	})
	for i := range refs {
		refs[i].FlatIndex = i
	}
	return refs
}

func (p *Plan) SegmentCount() int {
	if p == nil {
		return 0
	}
	return lo.SumBy(p.Days, func(d Day) int { return len(d.Segments) })
}

// FlatIndexOf returns the position of (dayIndex, segmentIndex) in the flattened order, or -1.
func (p *Plan) FlatIndexOf(dayIndex, segmentIndex int) int {
	if p == nil || dayIndex < 0 || dayIndex >= len(p.Days) {
		return -1
	}
	if segmentIndex < 0 || segmentIndex >= len(p.Days[dayIndex].Segments) {
		return -1
	}
	offset := 0
	for i := 0; i < dayIndex; i++ {
		offset += len(p.Days[i].Segments)
	}
	return offset + segmentIndex
}

func (p *Plan) SegmentIDs() []string {
	return lo.Map(p.FlatSegments(), func(r SegmentRef, _ int) string { return r.Segment.ID })
}

// Clone returns a deep copy so readers never observe in-place reorders.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := &Plan{
		Trip:        p.Trip,
		Concepts:    make([]Concept, len(p.Concepts)),
		Days:        make([]Day, len(p.Days)),
		Budget:      Budget{TotalCapUSD: cloneFloat(p.Budget.TotalCapUSD), EstTotalUSD: cloneFloat(p.Budget.EstTotalUSD), BufferUSD: cloneFloat(p.Budget.BufferUSD)},
		Nudges:      append([]string{}, p.Nudges...),
		NextActions: append([]string{}, p.NextActions...),
		Upsells:     make([]Upsell, len(p.Upsells)),
	}
	out.Trip.Destinations = append([]string{}, p.Trip.Destinations...)
	out.Trip.BudgetTotal = cloneFloat(p.Trip.BudgetTotal)
	for i, c := range p.Concepts {
		c.EstTotalUSD = cloneFloat(c.EstTotalUSD)
		c.EstCarbonKg = cloneFloat(c.EstCarbonKg)
		c.Risks = append([]string(nil), c.Risks...)
		c.Notes = append([]string(nil), c.Notes...)
		out.Concepts[i] = c
	}
	for i, d := range p.Days {
		segs := make([]Segment, len(d.Segments))
		for j, s := range d.Segments {
			s.CostUSD = cloneFloat(s.CostUSD)
			s.TaxesFeesUSD = cloneFloat(s.TaxesFeesUSD)
			s.CarbonKg = cloneFloat(s.CarbonKg)
			if s.LocationCoords != nil {
				coords := *s.LocationCoords
				s.LocationCoords = &coords
			}
			segs[j] = s
		}
		out.Days[i] = Day{Date: d.Date, Segments: segs}
	}
	for i, u := range p.Upsells {
		u.DeltaUSD = cloneFloat(u.DeltaUSD)
		u.DeltaCarbonKg = cloneFloat(u.DeltaCarbonKg)
		out.Upsells[i] = u
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
