// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"lane-supply-api-server/config"
	"lane-supply-api-server/internal/api/routes"
	"lane-supply-api-server/internal/auth"
	"lane-supply-api-server/internal/database"
	"lane-supply-api-server/internal/s3"
	"lane-supply-api-server/internal/socket"
	"lane-supply-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env overrides are optional; config falls back to config.yaml.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	client, db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	wsHub := socket.NewHub()

	st := store.New(store.NewMongoBackend(db), wsHub, store.Retention{
		CleanupIntervalDays: cfg.Retention.CleanupIntervalDays,
		RequestDays:         cfg.Retention.RequestDays,
		ReportingDays:       cfg.Retention.ReportingDays,
		NotificationDays:    cfg.Retention.NotificationDays,
		MessageDays:         cfg.Retention.MessageDays,
		BackupInterval:      cfg.Backup.IntervalDays,
		MaxBackups:          cfg.Backup.MaxSnapshots,
	})

	if err := database.SeedUsers(db, st); err != nil {
		log.Fatalf("Failed to seed user accounts: %v", err)
	}

	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	}

	router := routes.SetupRouter(cfg, db, st, s3Uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
