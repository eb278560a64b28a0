package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/utils"
)

// StatsController provides platform statistics such as counts and daily request volume.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the platform.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var sessionCount int64
	var appointmentCount int64
	var counselorCount int64
	var moodLogCount int64
	var dailyRequests int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.ChatSession{}).Count(&sessionCount).Error; err != nil {
		sessionCount = 0
	}

	if err := s.db.Model(&models.Appointment{}).Count(&appointmentCount).Error; err != nil {
		appointmentCount = 0
	}

	if err := s.db.Model(&models.Counselor{}).
		Where("is_available = ?", true).
		Count(&counselorCount).Error; err != nil {
		counselorCount = 0
	}

	if err := s.db.Model(&models.MoodLog{}).Count(&moodLogCount).Error; err != nil {
		moodLogCount = 0
	}

	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().UTC().Format("2006-01-02")
	if err := s.db.Model(&models.APIUsage{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyRequests).Error; err != nil {
		dailyRequests = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":          userCount,
		"chat_session_count":  sessionCount,
		"appointment_count":   appointmentCount,
		"counselor_count":     counselorCount,
		"mood_log_count":      moodLogCount,
		"daily_request_count": dailyRequests,
	})
}
