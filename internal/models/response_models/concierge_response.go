package response_models

import (
	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
)

type Snapshot struct {
	State       chat_models.AppState    `json:"state"`
	Messages    []chat_models.Message   `json:"messages"`
	Plan        *plan_models.Plan       `json:"plan"`
	Images      ImagesResponse          `json:"images"`
	Busy        bool                    `json:"busy"`
	Preferences chat_models.Preferences `json:"preferences"`
	InitError   string                  `json:"init_error,omitempty"`
}

// ImagesResponse distinguishes loading (Loading true, Images nil) from fetched-but-empty.
type ImagesResponse struct {
	Loading bool                         `json:"loading"`
	Images  []chat_models.ItineraryImage `json:"images"`
}

type TurnAccepted struct {
	UserMessageID      string `json:"user_message_id"`
	AssistantMessageID string `json:"assistant_message_id"`
}

type StateResponse struct {
	State chat_models.AppState `json:"state"`
}

type BookableItem struct {
	SegmentID string  `json:"segment_id"`
	Date      string  `json:"date"`
	DayLabel  string  `json:"day_label"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	CostUSD   float64 `json:"cost_usd"`
	Cost      string  `json:"cost"`
}

type ConfirmationSummary struct {
	Destinations []string       `json:"destinations"`
	Items        []BookableItem `json:"items"`
	TotalUSD     float64        `json:"total_usd"`
	Total        string         `json:"total"`
}

type MapMarker struct {
	SegmentID string  `json:"segment_id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Location  string  `json:"location,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type MapBounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

type MapData struct {
	Markers []MapMarker `json:"markers"`
	Bounds  *MapBounds  `json:"bounds,omitempty"`
}

type ShareLinkResponse struct {
	URL     string `json:"url"`
	Encoded string `json:"encoded"`
}
