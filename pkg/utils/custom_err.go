package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrChatNotInitialized     = errors.New("chat is not initialized")
	ErrTurnInFlight           = errors.New("a response is already in progress")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrMissingAPIKey          = errors.New("api key is not configured")
	ErrNoPlan                 = errors.New("no itinerary plan available")
	ErrTransitionNotAllowed   = errors.New("transition not allowed")
	ErrInvalidReorder         = errors.New("invalid reorder request")
	ErrUnknownPreference      = errors.New("unknown preference value")
	ErrPhotoServiceDisabled   = errors.New("photo service disabled")
	ErrPhotoServiceError      = errors.New("photo service error")
	ErrNoCalendarEvents       = errors.New("no timed segments to export")
	ErrExportFailed           = errors.New("export failed")
	ErrInvalidShareLink       = errors.New("invalid share link")
)
