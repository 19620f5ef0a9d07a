package plan_models

import "encoding/json"

type EnvelopeKind string

const (
	KindPlanDraft     EnvelopeKind = "plan_draft"
	KindNeededFields  EnvelopeKind = "needed_fields"
	KindPrices        EnvelopeKind = "prices"
	KindHolds         EnvelopeKind = "holds"
	KindDocs          EnvelopeKind = "docs"
	KindPaymentIntent EnvelopeKind = "payment_intent"
	KindError         EnvelopeKind = "error"
	KindUnknown       EnvelopeKind = "unknown"
)

// Checked in this order; the first key present decides the kind.
var envelopeKeys = []EnvelopeKind{
	KindPlanDraft, KindNeededFields, KindPrices, KindHolds, KindDocs, KindPaymentIntent, KindError,
}

// Envelope is the machine-readable half of an assistant reply. Only plan_draft carries a typed
// Plan; every other kind is passed through as Payload.
type Envelope struct {
	Kind    EnvelopeKind    `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Plan    *Plan           `json:"-"`
}

// ParseEnvelope classifies an extracted JSON object. A nil or non-object input yields nil.
func ParseEnvelope(raw json.RawMessage) *Envelope {
	obj := objectOf(raw)
	if obj == nil {
		return nil
	}
	for _, key := range envelopeKeys {
		payload, ok := obj[string(key)]
		if !ok {
			continue
		}
		env := &Envelope{Kind: key, Payload: payload}
		if key == KindPlanDraft {
			if plan, err := FromJSON(payload); err == nil {
				env.Plan = plan
			}
		}
		return env
	}
	return &Envelope{Kind: KindUnknown, Payload: raw}
}
