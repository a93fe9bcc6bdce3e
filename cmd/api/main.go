package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ticketwave/checkin-go/internal/api/middleware"
	"github.com/ticketwave/checkin-go/internal/api/routes"
	"github.com/ticketwave/checkin-go/internal/application"
	"github.com/ticketwave/checkin-go/internal/config"
	"github.com/ticketwave/checkin-go/internal/gateway"
	"github.com/ticketwave/checkin-go/internal/session"
	"github.com/ticketwave/checkin-go/internal/storage"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	store, err := session.New(config.SessionFile, config.SessionKey)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	gw := gateway.NewMeupGateway(config.GatewayTimeout)

	var objects application.ObjectStore
	if config.MinioEnabled {
		reports, err := storage.NewReportStore(
			config.MinioEndpoint,
			config.MinioAccessKey,
			config.MinioSecretKey,
			config.MinioBucket,
			config.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		objects = reports
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, store, gw, objects, config.Sites)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
