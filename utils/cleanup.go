package utils

import (
	"log"
	"time"

	"github.com/Shish1928/mental-health-platform/config"
	"github.com/Shish1928/mental-health-platform/models"
)

// StartSessionCleaner launches a background goroutine that periodically
// closes chat sessions with no activity for longer than the configured
// idle window. Closing is best-effort and failures are logged.
func StartSessionCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			c := config.Get()
			cutoff := time.Now().Add(-time.Duration(c.SessionIdleMinutes) * time.Minute)
			now := time.Now()
			res := db.Model(&models.ChatSession{}).
				Where("ended_at IS NULL AND last_active_at < ?", cutoff).
				Update("ended_at", now)
			if res.Error != nil {
				log.Printf("session cleaner failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 && Sugar != nil {
				Sugar.Infof("closed %d idle chat sessions", res.RowsAffected)
			}
		}
	}()
}
