package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

// MoodController records daily mood check-ins and serves mood history.
type MoodController struct {
	db       *gorm.DB
	progress *services.ProgressService
}

// NewMoodController creates a MoodController.
func NewMoodController(db *gorm.DB, progress *services.ProgressService) *MoodController {
	return &MoodController{db: db, progress: progress}
}

// LogMood upserts today's mood entry and feeds the mood streak.
func (mc *MoodController) LogMood(ctx *gin.Context) {
	type request struct {
		MoodScore int    `json:"mood_score" binding:"required,min=1,max=5"`
		Notes     string `json:"notes" binding:"max=2000"`
		Date      string `json:"date"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	date := req.Date
	if date == "" {
		date = services.Today()
	} else if _, err := services.ParseDate(date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid date, expected YYYY-MM-DD")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	entry := models.MoodLog{
		UserID:    userID,
		Date:      date,
		MoodScore: req.MoodScore,
		Notes:     utils.Sanitize(req.Notes),
	}

	// Same-day re-log overwrites instead of duplicating.
	if err := mc.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"mood_score": req.MoodScore,
			"notes":      entry.Notes,
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to store mood entry")
		return
	}

	result, err := mc.progress.TrackActivity(ctx.Request.Context(), userID, "mood", strconv.FormatUint(uint64(entry.ID), 10), 0, 5, date)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to update progress")
		return
	}

	utils.Success(ctx, gin.H{
		"entry":            entry,
		"points_earned":    result.PointsEarned,
		"streak_updated":   result.StreakChanged,
		"new_achievements": result.NewAchievements,
	})
}

// GetHistory returns the caller's mood entries over the requested window
// (default 30 days) along with the average score.
func (mc *MoodController) GetHistory(ctx *gin.Context) {
	days := 30
	if v := ctx.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	var entries []models.MoodLog
	if err := mc.db.Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load mood history")
		return
	}

	var average float64
	if len(entries) > 0 {
		var sum int
		for _, e := range entries {
			sum += e.MoodScore
		}
		average = float64(sum) / float64(len(entries))
	}

	utils.Success(ctx, gin.H{
		"items":         entries,
		"average_score": average,
		"days":          days,
	})
}
