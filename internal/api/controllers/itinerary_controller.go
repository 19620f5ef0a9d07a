package controllers

import (
	"net/http"
	"strconv"

	"concierge/internal/models/request_models"
	"concierge/internal/services"
	"concierge/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ItineraryController struct {
	conciergeService services.ConciergeServiceInterface
}

func NewItineraryController(conciergeService services.ConciergeServiceInterface) *ItineraryController {
	return &ItineraryController{conciergeService: conciergeService}
}

// POST /itinerary/reorder
func (ic *ItineraryController) ReorderHandler(c *gin.Context) {
	var req request_models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	plan, err := ic.conciergeService.Reorder(req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Itinerary updated")
}

// GET /itinerary/images
func (ic *ItineraryController) GetImagesHandler(c *gin.Context) {
	utils.RespondSuccess(c, ic.conciergeService.Images(), "")
}

// POST /itinerary/images/:index/displayed
func (ic *ItineraryController) ImageDisplayedHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "index must be a number")
		return
	}
	if err := ic.conciergeService.TrackImageDisplayed(c.Request.Context(), index); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusAccepted, nil, "Download tracking queued")
}

// GET /itinerary/confirmation
func (ic *ItineraryController) GetConfirmationHandler(c *gin.Context) {
	plan := ic.conciergeService.Plan()
	if plan == nil {
		utils.HandleServiceError(c, utils.ErrNoPlan)
		return
	}
	utils.RespondSuccess(c, services.BuildConfirmationSummary(plan), "")
}

// GET /itinerary/map
func (ic *ItineraryController) GetMapHandler(c *gin.Context) {
	plan := ic.conciergeService.Plan()
	if plan == nil {
		utils.HandleServiceError(c, utils.ErrNoPlan)
		return
	}
	utils.RespondSuccess(c, services.BuildMapData(plan), "")
}
