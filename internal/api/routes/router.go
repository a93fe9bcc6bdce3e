package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/api/handlers"
	"github.com/ticketwave/checkin-go/internal/api/middleware"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/session"
)

func RegisterRoutes(r *gin.Engine, store *session.Store, gw gateway.Gateway, objects application.ObjectStore, sites map[string]string) {
	// init
	services_instance := application.New(gw, store, sites, objects)
	handlers_instance := handlers.New(services_instance, store, r)

	// setup
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", handlers_instance.Auth.Login)
	r.GET("/ws/scans", handlers_instance.Scan.Feed)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.POST("/logout", handlers_instance.Auth.Logout)
		auth.GET("/status", handlers_instance.Auth.Status)

		events := auth.Group("/events")
		{
			events.GET("", handlers_instance.Event.List)
			events.GET("/:eid/summary", handlers_instance.Event.Summary)
			events.POST("/:eid/select", handlers_instance.Event.Select)
			events.POST("/:eid/report", handlers_instance.Report.Generate)
		}

		views := auth.Group("/views")
		{
			views.POST("", handlers_instance.History.Open)
			views.GET("/:id", handlers_instance.History.Get)
			views.POST("/:id/enrich", handlers_instance.History.Enrich)
			views.DELETE("/:id", handlers_instance.History.Close)
		}

		auth.POST("/scan", handlers_instance.Scan.Scan)
		auth.POST("/scan/reset", handlers_instance.Scan.Reset)

		auth.GET("/settings", handlers_instance.Settings.Get)
		auth.PUT("/settings", handlers_instance.Settings.Update)
	}
}
