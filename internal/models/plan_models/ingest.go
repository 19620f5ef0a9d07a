package plan_models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrPlanNotObject = errors.New("plan draft is not a JSON object")

// FromJSON builds a Plan from an untrusted plan_draft value. Individual fields that have the
// wrong shape are defaulted rather than failing the whole plan.
func FromJSON(raw json.RawMessage) (*Plan, error) {
	obj := objectOf(raw)
	if obj == nil {
		return nil, ErrPlanNotObject
	}

	p := &Plan{
		Trip:        tripOf(obj["trip"]),
		Concepts:    []Concept{},
		Days:        []Day{},
		Budget:      budgetOf(obj["budget"]),
		Nudges:      stringsOf(obj["nudges"]),
		NextActions: stringsOf(obj["next_actions"]),
		Upsells:     []Upsell{},
	}
	for _, c := range arrayOf(obj["concepts"]) {
		if co := objectOf(c); co != nil {
			p.Concepts = append(p.Concepts, Concept{
				Name:        stringOf(co["name"]),
				Overview:    stringOf(co["overview"]),
				EstTotalUSD: floatOf(co["est_total_usd"]),
				EstCarbonKg: floatOf(co["est_carbon_kg"]),
				BudgetFit:   stringOf(co["budget_fit"]),
				Risks:       stringsOf(co["risks"]),
				Notes:       stringsOf(co["notes"]),
			})
		}
	}
	for _, d := range arrayOf(obj["days"]) {
		do := objectOf(d)
		if do == nil {
			continue
		}
		day := Day{Date: stringOf(do["date"]), Segments: []Segment{}}
		for _, s := range arrayOf(do["segments"]) {
			if so := objectOf(s); so != nil {
				day.Segments = append(day.Segments, segmentOf(so))
			}
		}
		p.Days = append(p.Days, day)
	}
	for _, u := range arrayOf(obj["upsells"]) {
		if uo := objectOf(u); uo != nil {
			p.Upsells = append(p.Upsells, Upsell{
				SegmentRef:    stringOf(uo["segment_ref"]),
				Label:         stringOf(uo["label"]),
				DeltaUSD:      floatOf(uo["delta_usd"]),
				DeltaCarbonKg: floatOf(uo["delta_carbon_kg"]),
				Rationale:     stringOf(uo["rationale"]),
			})
		}
	}

	p.mergeDays()
	p.ensureUniqueIDs()
	return p, nil
}

func tripOf(raw json.RawMessage) Trip {
	t := Trip{Destinations: []string{}}
	obj := objectOf(raw)
	if obj == nil {
		return t
	}
	t.ID = stringOf(obj["id"])
	t.Origin = stringOf(obj["origin"])
	t.Destinations = stringsOf(obj["destinations"])
	if dates := objectOf(obj["dates"]); dates != nil {
		t.Dates = DateRange{Start: stringOf(dates["start"]), End: stringOf(dates["end"])}
	}
	if party := objectOf(obj["party"]); party != nil {
		t.Party = Party{Adults: intOf(party["adults"]), Children: intOf(party["children"])}
	}
	t.BudgetTotal = floatOf(obj["budget_total"])
	t.Status = stringOf(obj["status"])
	return t
}

func budgetOf(raw json.RawMessage) Budget {
	obj := objectOf(raw)
	if obj == nil {
		return Budget{}
	}
	return Budget{
		TotalCapUSD: floatOf(obj["total_cap_usd"]),
		EstTotalUSD: floatOf(obj["est_total_usd"]),
		BufferUSD:   floatOf(obj["buffer_usd"]),
	}
}

func segmentOf(obj map[string]json.RawMessage) Segment {
	seg := Segment{
		ID:           stringOf(obj["id"]),
		Type:         ParseSegmentType(stringOf(obj["type"])),
		Title:        stringOf(obj["title"]),
		Start:        stringOf(obj["start"]),
		End:          stringOf(obj["end"]),
		Location:     stringOf(obj["location"]),
		CostUSD:      floatOf(obj["cost_usd"]),
		TaxesFeesUSD: floatOf(obj["taxes_fees_usd"]),
		CarbonKg:     floatOf(obj["carbon_kg"]),
		SupplierID:   stringOf(obj["supplier_id"]),
		Narrative:    stringOf(obj["narrative"]),
	}
	if coords := objectOf(obj["location_coords"]); coords != nil {
		lat, lon := floatOf(coords["lat"]), floatOf(coords["lon"])
		if lon == nil {
			lon = floatOf(coords["lng"])
		}
		if lat != nil && lon != nil {
			seg.LocationCoords = &Coordinates{Lat: *lat, Lon: *lon}
		}
	}
	return seg
}

// mergeDays folds days sharing a date into the first occurrence, keeping segment order.
func (p *Plan) mergeDays() {
	merged := make([]Day, 0, len(p.Days))
	index := map[string]int{}
	for _, d := range p.Days {
		if i, ok := index[d.Date]; ok && d.Date != "" {
			merged[i].Segments = append(merged[i].Segments, d.Segments...)
			continue
		}
		index[d.Date] = len(merged)
		merged = append(merged, d)
	}
	p.Days = merged
}

// ensureUniqueIDs replaces empty or repeated segment IDs with fresh ones.
func (p *Plan) ensureUniqueIDs() {
	seen := map[string]bool{}
	for i := range p.Days {
		for j := range p.Days[i].Segments {
			seg := &p.Days[i].Segments[j]
			if seg.ID == "" || seen[seg.ID] {
				seg.ID = "seg-" + uuid.NewString()
			}
			seen[seg.ID] = true
		}
	}
}

func objectOf(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func arrayOf(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

// stringOf accepts a JSON string or number; anything else is "".
func stringOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func stringsOf(raw json.RawMessage) []string {
	out := []string{}
	for _, item := range arrayOf(raw) {
		if s := stringOf(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// floatOf accepts a JSON number or a numeric string such as "1,250" or "$300".
func floatOf(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(f)
	}
	return nil
}

// finite drops NaN and the infinities, which ParseFloat accepts and encoding/json cannot write.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func intOf(raw json.RawMessage) int {
	if f := floatOf(raw); f != nil {
		return int(*f)
	}
	return 0
}
