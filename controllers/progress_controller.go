package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

// ProgressController exposes activity tracking, the dashboard, and achievements.
type ProgressController struct {
	progress *services.ProgressService
}

// NewProgressController creates a ProgressController.
func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{progress: progress}
}

// TrackActivity records a wellness activity and returns streak/achievement changes.
func (pc *ProgressController) TrackActivity(ctx *gin.Context) {
	type request struct {
		ActivityType    string `json:"activity_type" binding:"required,max=32"`
		ActivityID      string `json:"activity_id" binding:"max=64"`
		DurationMinutes int    `json:"duration_minutes" binding:"min=0"`
		PointsEarned    int    `json:"points_earned" binding:"min=0"`
		Date            string `json:"date"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	date := req.Date
	if date == "" {
		date = services.Today()
	}
	points := req.PointsEarned
	if points == 0 {
		points = 10
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	result, err := pc.progress.TrackActivity(ctx.Request.Context(), userID, req.ActivityType, req.ActivityID, req.DurationMinutes, points, date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			utils.Error(ctx, http.StatusBadRequest, 40041, "invalid activity date")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to track activity")
		return
	}

	utils.Success(ctx, result)
}

// GetDashboard returns points, streaks, recent achievements and weekly activity.
func (pc *ProgressController) GetDashboard(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)

	dashboard, err := pc.progress.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load dashboard")
		return
	}

	utils.Success(ctx, dashboard)
}

// GetAchievements returns all achievements earned by the caller.
func (pc *ProgressController) GetAchievements(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)

	achievements, err := pc.progress.ListAchievements(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load achievements")
		return
	}

	utils.Success(ctx, gin.H{"items": achievements})
}

// GetStreak returns the caller's streak for one activity type.
func (pc *ProgressController) GetStreak(ctx *gin.Context) {
	activityType := ctx.Param("type")
	userID := ctx.GetUint(middleware.ContextUserIDKey)

	streak, err := pc.progress.GetStreak(ctx.Request.Context(), userID, activityType)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Success(ctx, gin.H{
				"activity_type":  activityType,
				"current_streak": 0,
				"longest_streak": 0,
			})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load streak")
		return
	}

	utils.Success(ctx, streak)
}
