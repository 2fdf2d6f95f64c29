package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	api "umailer-backend/cmd/api"
	emaildomain "umailer-backend/internal/email/domain"
	emailRepo "umailer-backend/internal/email/repository"
	emailUsecase "umailer-backend/internal/email/usecase"
	"umailer-backend/pkg/config"
	"umailer-backend/pkg/database"
	"umailer-backend/pkg/imap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Create the attachment storage root if it doesn't exist yet
	if err := os.MkdirAll(cfg.AttachmentsDir, 0o755); err != nil {
		log.Fatal("Failed to create attachments directory: ", err)
	}

	loc, err := time.LoadLocation(cfg.ReferenceTimezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.ReferenceTimezone, err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&emaildomain.Email{}, &emaildomain.Attachment{}); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Initialize repository and IMAP provider (dependency injection)
	emailRepository := emailRepo.NewEmailRepository(db)
	imapService := imap.NewService()

	// Initialize use case
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, imapService, cfg, loc)

	// Initialize HTTP handler
	handler := api.NewHandler(emailUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
