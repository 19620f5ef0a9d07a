package controllers

import (
	"log"

	"concierge/internal/services"
	"concierge/pkg/hub"

	"github.com/gin-gonic/gin"
)

type WSController struct {
	hub              *hub.Hub
	conciergeService services.ConciergeServiceInterface
}

func NewWSController(h *hub.Hub, conciergeService services.ConciergeServiceInterface) *WSController {
	return &WSController{hub: h, conciergeService: conciergeService}
}

// GET /ws
// Clients get a full snapshot first, then incremental events.
func (wc *WSController) ServeHandler(c *gin.Context) {
	initial := func() *hub.Event {
		return &hub.Event{Type: "snapshot", Data: wc.conciergeService.Snapshot()}
	}
	if err := wc.hub.Serve(c.Writer, c.Request, initial); err != nil {
		log.Printf("websocket upgrade: %v", err)
	}
}
