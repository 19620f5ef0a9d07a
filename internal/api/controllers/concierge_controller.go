package controllers

import (
	"context"
	"log"
	"net/http"

	"concierge/internal/models/request_models"
	"concierge/internal/models/response_models"
	"concierge/internal/services"
	"concierge/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ConciergeController struct {
	conciergeService services.ConciergeServiceInterface
}

func NewConciergeController(conciergeService services.ConciergeServiceInterface) *ConciergeController {
	return &ConciergeController{
		conciergeService: conciergeService,
	}
}

// GET /concierge
func (cc *ConciergeController) GetSnapshotHandler(c *gin.Context) {
	utils.RespondSuccess(c, cc.conciergeService.Snapshot(), "")
}

// POST /concierge/messages
// The reply streams over /ws; the request only waits for the turn to be accepted.
func (cc *ConciergeController) SendMessageHandler(c *gin.Context) {
	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "text is required")
		return
	}

	turn, err := cc.conciergeService.BeginTurn(req.Text)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	go func() {
		if err := turn.Run(context.Background()); err != nil {
			log.Printf("Turn %s finished with error: %v", turn.AssistantMessageID, err)
		}
	}()

	utils.RespondWithStatus(c, http.StatusAccepted, response_models.TurnAccepted{
		UserMessageID:      turn.UserMessageID,
		AssistantMessageID: turn.AssistantMessageID,
	}, "Message accepted")
}

// PATCH /concierge/preferences
func (cc *ConciergeController) UpdatePreferencesHandler(c *gin.Context) {
	var patch request_models.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	prefs, err := cc.conciergeService.UpdatePreferences(patch)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prefs, "Preferences updated")
}

// POST /concierge/preferences/accommodation/toggle
func (cc *ConciergeController) ToggleAccommodationHandler(c *gin.Context) {
	var req request_models.ToggleAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "option is required")
		return
	}
	prefs, err := cc.conciergeService.ToggleAccommodation(req.Option)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prefs, "Preferences updated")
}

// POST /concierge/actions/:action
func (cc *ConciergeController) ActionHandler(c *gin.Context) {
	state, err := cc.conciergeService.Act(services.Action(c.Param("action")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.StateResponse{State: state}, "")
}
