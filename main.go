package main

import (
	"time"

	"github.com/Shish1928/mental-health-platform/config"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/routes"
	"github.com/Shish1928/mental-health-platform/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.MoodLog{},
		&models.MediaContent{},
		&models.MediaProgress{},
		&models.MediaFavorite{},
		&models.ActivityRecord{},
		&models.Streak{},
		&models.Achievement{},
		&models.Counselor{},
		&models.Appointment{},
		&models.VoiceInteraction{},
		&models.EmergencyResource{},
		&models.EmergencyAlert{},
		&models.APIUsage{},
	)
	config.SeedEmergencyResources(db)

	r := routes.SetupRouter(db)

	// Close idle chat sessions in the background (best-effort)
	utils.StartSessionCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
