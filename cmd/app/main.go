package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"concierge/cmd/fx/chat_fx"
	"concierge/cmd/fx/concierge_fx"
	"concierge/cmd/fx/config_fx"
	"concierge/cmd/fx/controllers_fx"
	"concierge/cmd/fx/export_fx"
	"concierge/cmd/fx/hub_fx"
	"concierge/cmd/fx/memcache_fx"
	"concierge/cmd/fx/photo_fx"
	"concierge/internal/api/controllers"
	"concierge/internal/infra"
	"concierge/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config_fx.Module,
		memcache_fx.Module,
		hub_fx.Module,
		chat_fx.Module,
		photo_fx.Module,
		concierge_fx.Module,
		export_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	conciergeController *controllers.ConciergeController,
	itineraryController *controllers.ItineraryController,
	exportController *controllers.ExportController,
	wsController *controllers.WSController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, conciergeController, itineraryController, exportController, wsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	conciergeController *controllers.ConciergeController,
	itineraryController *controllers.ItineraryController,
	exportController *controllers.ExportController,
	wsController *controllers.WSController) {

	conciergeGroup := r.Group("/concierge")
	conciergeGroup.GET("", conciergeController.GetSnapshotHandler)
	conciergeGroup.POST("/messages", conciergeController.SendMessageHandler)
	conciergeGroup.PATCH("/preferences", conciergeController.UpdatePreferencesHandler)
	conciergeGroup.POST("/preferences/accommodation/toggle", conciergeController.ToggleAccommodationHandler)
	conciergeGroup.POST("/actions/:action", conciergeController.ActionHandler)

	itineraryGroup := r.Group("/itinerary")
	itineraryGroup.POST("/reorder", itineraryController.ReorderHandler)
	itineraryGroup.GET("/images", itineraryController.GetImagesHandler)
	itineraryGroup.POST("/images/:index/displayed", itineraryController.ImageDisplayedHandler)
	itineraryGroup.GET("/confirmation", itineraryController.GetConfirmationHandler)
	itineraryGroup.GET("/map", itineraryController.GetMapHandler)

	exportGroup := r.Group("/export")
	exportGroup.GET("/share", exportController.ShareLinkHandler)
	exportGroup.POST("/share/load", exportController.LoadShareHandler)
	exportGroup.GET("/calendar.ics", exportController.CalendarHandler)
	exportGroup.GET("/itinerary.pdf", exportController.PDFHandler)

	r.GET("/ws", wsController.ServeHandler)
}
