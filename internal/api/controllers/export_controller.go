package controllers

import (
	"errors"
	"log"
	"net/http"

	"concierge/internal/models/request_models"
	"concierge/internal/models/response_models"
	"concierge/internal/services"
	"concierge/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	conciergeService services.ConciergeServiceInterface
	shareService     services.ShareServiceInterface
	calendarService  services.CalendarServiceInterface
	pdfService       services.PDFServiceInterface
}

func NewExportController(
	conciergeService services.ConciergeServiceInterface,
	shareService services.ShareServiceInterface,
	calendarService services.CalendarServiceInterface,
	pdfService services.PDFServiceInterface,
) *ExportController {
	return &ExportController{
		conciergeService: conciergeService,
		shareService:     shareService,
		calendarService:  calendarService,
		pdfService:       pdfService,
	}
}

// GET /export/share
func (ec *ExportController) ShareLinkHandler(c *gin.Context) {
	link, encoded, err := ec.shareService.ShareURL(ec.conciergeService.Plan())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ShareLinkResponse{URL: link, Encoded: encoded}, "")
}

// POST /export/share/load
// A link that cannot be decoded is reported as "no shared plan" and leaves the session untouched.
func (ec *ExportController) LoadShareHandler(c *gin.Context) {
	var req request_models.ShareLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "link is required")
		return
	}
	plan, err := ec.shareService.DecodeLink(req.Link)
	if err != nil {
		log.Printf("Ignoring shared plan: %v", err)
		utils.RespondSuccess(c, gin.H{"loaded": false}, "No shared plan found")
		return
	}
	if err := ec.conciergeService.LoadSharedPlan(plan); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"loaded": true, "plan": plan}, "Shared plan loaded")
}

// GET /export/calendar.ics
func (ec *ExportController) CalendarHandler(c *gin.Context) {
	data, _, err := ec.calendarService.ExportICS(ec.conciergeService.Plan())
	if errors.Is(err, utils.ErrNoCalendarEvents) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=itinerary.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// GET /export/itinerary.pdf
func (ec *ExportController) PDFHandler(c *gin.Context) {
	plan := ec.conciergeService.Plan()
	if plan == nil {
		utils.HandleServiceError(c, utils.ErrNoPlan)
		return
	}
	shareURL, _, err := ec.shareService.ShareURL(plan)
	if err != nil {
		log.Printf("PDF without share code: %v", err)
		shareURL = ""
	}
	data, err := ec.pdfService.RenderItinerary(plan, shareURL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=itinerary.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
