package request_models

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// PreferencesPatch is a partial update; nil fields are left unchanged.
type PreferencesPatch struct {
	TravelStyle         *string  `json:"travel_style,omitempty"`
	DietaryRestrictions *string  `json:"dietary_restrictions,omitempty"`
	AccessibilityNeeds  *string  `json:"accessibility_needs,omitempty"`
	AccommodationTypes  []string `json:"accommodation_types,omitempty"`
}

type ToggleAccommodationRequest struct {
	Option string `json:"option" binding:"required"`
}

// ReorderRequest moves one segment. A nil ToSegment drops it at the end of the target day.
type ReorderRequest struct {
	FromDay     int  `json:"from_day"`
	FromSegment int  `json:"from_segment"`
	ToDay       int  `json:"to_day"`
	ToSegment   *int `json:"to_segment,omitempty"`
}

type ShareLoadRequest struct {
	Link string `json:"link" binding:"required"`
}
