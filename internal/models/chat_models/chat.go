package chat_models

import (
	"encoding/json"
	"time"

	"concierge/internal/models/plan_models"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Message struct {
	ID        string                   `json:"id"`
	Sender    Sender                   `json:"sender"`
	Summary   string                   `json:"summary"`
	JSON      json.RawMessage          `json:"json,omitempty"`
	Kind      plan_models.EnvelopeKind `json:"kind,omitempty"`
	IsError   bool                     `json:"is_error,omitempty"`
	Streaming bool                     `json:"streaming,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

type TravelStyle string

const (
	StyleBalanced    TravelStyle = "Balanced"
	StyleAdventurous TravelStyle = "Adventurous"
	StyleRelaxed     TravelStyle = "Relaxed"
	StyleCultural    TravelStyle = "Cultural"
	StyleLuxury      TravelStyle = "Luxury"
)

var TravelStyles = []TravelStyle{StyleBalanced, StyleAdventurous, StyleRelaxed, StyleCultural, StyleLuxury}

var AccommodationOptions = []string{"Boutique Hotel", "Luxury Resort", "Private Villa", "Unique Stay"}

type Preferences struct {
	TravelStyle         TravelStyle `json:"travel_style"`
	DietaryRestrictions string      `json:"dietary_restrictions"`
	AccessibilityNeeds  string      `json:"accessibility_needs"`
	AccommodationTypes  []string    `json:"accommodation_types"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		TravelStyle:        StyleBalanced,
		AccommodationTypes: []string{"Boutique Hotel"},
	}
}

type AppState string

const (
	StateChatting          AppState = "chatting"
	StateVisualSummary     AppState = "visual_summary"
	StateDetailedItinerary AppState = "detailed_itinerary"
	StateConfirmation      AppState = "confirmation"
	StateConfirmed         AppState = "confirmed"
)

// ItineraryImage is aligned by position with Plan.FlatSegments.
type ItineraryImage struct {
	URL              string `json:"url"`
	DownloadURL      string `json:"download_url,omitempty"`
	PhotographerName string `json:"photographer_name,omitempty"`
	PhotographerURL  string `json:"photographer_url,omitempty"`
}
