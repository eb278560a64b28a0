package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shish1928/mental-health-platform/models"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
