package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
)

// ProgressService maintains activity records, streak counters and
// achievement grants. All mutations for one activity event run inside a
// single transaction keyed on the (user, activity type) streak row.
type ProgressService struct {
	db *gorm.DB
}

// NewProgressService creates a ProgressService.
func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// TrackActivityResult is the outcome of one tracked activity event.
type TrackActivityResult struct {
	PointsEarned    int      `json:"points_earned"`
	StreakChanged   bool     `json:"streak_updated"`
	NewAchievements []string `json:"new_achievements"`
}

// TrackActivity records an activity event, advances the streak and grants
// any newly crossed milestones. A failed achievement grant does not undo
// the activity record or the streak update; the two concerns write
// separately on purpose.
func (p *ProgressService) TrackActivity(ctx context.Context, userID uint, activityType, activityID string, durationMinutes, pointsEarned int, date string) (*TrackActivityResult, error) {
	if activityType == "" {
		return nil, fmt.Errorf("%w: activity type is required", ErrInvalidArgument)
	}
	if date == "" {
		date = Today()
	} else if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	record := models.ActivityRecord{
		UserID:          userID,
		ActivityType:    activityType,
		ActivityID:      activityID,
		DurationMinutes: durationMinutes,
		PointsEarned:    pointsEarned,
		Date:            date,
	}
	if err := p.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("%w: record activity: %v", ErrInternal, err)
	}

	changed, err := p.RecordActivity(ctx, userID, activityType, date)
	if err != nil {
		return nil, err
	}

	granted, err := p.Evaluate(ctx, userID, activityType)
	if err != nil {
		return nil, err
	}

	return &TrackActivityResult{
		PointsEarned:    pointsEarned,
		StreakChanged:   changed,
		NewAchievements: granted,
	}, nil
}

// DashboardStreak is one active streak on the dashboard.
type DashboardStreak struct {
	ActivityType string `json:"activity_type"`
	Streak       int    `json:"streak"`
}

// DashboardDay aggregates one day of activity.
type DashboardDay struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
	Points       int    `json:"points"`
}

// DashboardActivity aggregates one activity type over the last month.
type DashboardActivity struct {
	ActivityType string `json:"activity_type"`
	TotalMinutes int    `json:"total_minutes"`
	Sessions     int    `json:"sessions"`
}

// Dashboard is the user-facing progress summary.
type Dashboard struct {
	TotalPoints        int64                `json:"total_points"`
	CurrentStreaks     []DashboardStreak    `json:"current_streaks"`
	RecentAchievements []models.Achievement `json:"recent_achievements"`
	WeeklyProgress     []DashboardDay       `json:"weekly_progress"`
	TopActivities      []DashboardActivity  `json:"top_activities"`
}

// GetDashboard assembles the progress summary for one user.
func (p *ProgressService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	db := p.db.WithContext(ctx)
	dash := &Dashboard{
		CurrentStreaks:     []DashboardStreak{},
		RecentAchievements: []models.Achievement{},
		WeeklyProgress:     []DashboardDay{},
		TopActivities:      []DashboardActivity{},
	}

	if err := db.Model(&models.ActivityRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points_earned),0)").
		Scan(&dash.TotalPoints).Error; err != nil {
		return nil, fmt.Errorf("%w: total points: %v", ErrInternal, err)
	}

	var streaks []models.Streak
	if err := db.Where("user_id = ? AND current_streak > 0", userID).
		Order("current_streak DESC").
		Find(&streaks).Error; err != nil {
		return nil, fmt.Errorf("%w: streaks: %v", ErrInternal, err)
	}
	for _, s := range streaks {
		dash.CurrentStreaks = append(dash.CurrentStreaks, DashboardStreak{ActivityType: s.ActivityType, Streak: s.CurrentStreak})
	}

	if err := db.Where("user_id = ?", userID).
		Order("earned_at DESC").
		Limit(5).
		Find(&dash.RecentAchievements).Error; err != nil {
		return nil, fmt.Errorf("%w: achievements: %v", ErrInternal, err)
	}

	weekAgo, _ := ParseDate(Today())
	weekStart := weekAgo.AddDate(0, 0, -7).Format("2006-01-02")
	if err := db.Model(&models.ActivityRecord{}).
		Where("user_id = ? AND date >= ?", userID, weekStart).
		Select("date, COALESCE(SUM(duration_minutes),0) AS total_minutes, COALESCE(SUM(points_earned),0) AS points").
		Group("date").
		Order("date DESC").
		Scan(&dash.WeeklyProgress).Error; err != nil {
		return nil, fmt.Errorf("%w: weekly progress: %v", ErrInternal, err)
	}

	monthStart := weekAgo.AddDate(0, 0, -30).Format("2006-01-02")
	if err := db.Model(&models.ActivityRecord{}).
		Where("user_id = ? AND date >= ?", userID, monthStart).
		Select("activity_type, COALESCE(SUM(duration_minutes),0) AS total_minutes, COUNT(*) AS sessions").
		Group("activity_type").
		Order("total_minutes DESC").
		Limit(5).
		Scan(&dash.TopActivities).Error; err != nil {
		return nil, fmt.Errorf("%w: top activities: %v", ErrInternal, err)
	}

	return dash, nil
}
