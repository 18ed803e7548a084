package main

import (
	"fmt"
	"log"

	"checkdesk/internal/config"
	"checkdesk/internal/handler"
	"checkdesk/internal/port"
	"checkdesk/internal/repository/postgres"
	"checkdesk/internal/router"
	"checkdesk/internal/service"
	s3storage "checkdesk/internal/storage/s3"
	"checkdesk/internal/vision"
	claudevision "checkdesk/internal/vision/claude"
	openaivision "checkdesk/internal/vision/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	checkRepo := postgres.NewCheckRepo(db)

	// Initialize storage; without a bucket, image URLs fall back to data URIs
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize vision client with optional fallback provider
	vision.RegisterProvider("openai", func(c *config.VisionProviderConfig) (port.VisionClient, error) {
		return openaivision.NewClient(c), nil
	})
	vision.RegisterProvider("claude", func(c *config.VisionProviderConfig) (port.VisionClient, error) {
		return claudevision.NewClient(c), nil
	})

	visionClient, err := vision.NewClient(&cfg.Vision.Primary)
	if err != nil {
		return fmt.Errorf("failed to initialize vision client: %w", err)
	}
	if secondary := cfg.Vision.SecondaryConfig(); secondary != nil {
		secondaryClient, err := vision.NewClient(secondary)
		if err != nil {
			return fmt.Errorf("failed to initialize secondary vision client: %w", err)
		}
		visionClient = vision.NewFallbackClient(
			[]port.VisionClient{visionClient, secondaryClient},
			[]string{cfg.Vision.Primary.Provider, secondary.Provider},
		)
	}

	// Initialize services
	checkSvc := service.NewCheckService(checkRepo, storage, visionClient, &cfg.S3, &cfg.Upload)

	// Initialize handlers
	checkH := handler.NewCheckHandler(checkSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, checkH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
