package services

import (
	"context"
	"testing"

	"github.com/Shish1928/mental-health-platform/models"
)

// seedStreak writes a streak row directly so evaluation can be tested at
// arbitrary counts.
func seedStreak(t *testing.T, svc *ProgressService, userID uint, activityType string, current, longest int) {
	t.Helper()
	streak := models.Streak{
		UserID:           userID,
		ActivityType:     activityType,
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastActivityDate: Today(),
	}
	if err := svc.db.Create(&streak).Error; err != nil {
		t.Fatalf("seed streak: %v", err)
	}
}

func TestEvaluateGrantsReachedMilestones(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	seedStreak(t, svc, 1, "meditation", 30, 30)

	granted, err := svc.Evaluate(ctx, 1, "meditation")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := []string{"7-day-meditation-streak", "30-day-meditation-streak"}
	if len(granted) != len(want) {
		t.Fatalf("granted %v, want %v", granted, want)
	}
	for i := range want {
		if granted[i] != want[i] {
			t.Fatalf("granted %v, want %v", granted, want)
		}
	}

	var badge models.Achievement
	if err := svc.db.Where("user_id = ? AND achievement_name = ?", 1, "30-day-meditation-streak").First(&badge).Error; err != nil {
		t.Fatalf("load badge: %v", err)
	}
	if badge.PointsValue != 300 {
		t.Fatalf("points=%d want 300", badge.PointsValue)
	}
	if badge.Description != "Completed 30 consecutive days of meditation" {
		t.Fatalf("unexpected description %q", badge.Description)
	}
	if badge.AchievementType != "streak" {
		t.Fatalf("type=%q want streak", badge.AchievementType)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	seedStreak(t, svc, 2, "journaling", 7, 7)

	first, err := svc.Evaluate(ctx, 2, "journaling")
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if len(first) != 1 || first[0] != "7-day-journaling-streak" {
		t.Fatalf("first grant %v", first)
	}

	second, err := svc.Evaluate(ctx, 2, "journaling")
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second evaluate granted %v, want nothing", second)
	}

	var count int64
	svc.db.Model(&models.Achievement{}).Where("user_id = ?", 2).Count(&count)
	if count != 1 {
		t.Fatalf("%d achievement rows, want 1", count)
	}
}

func TestEvaluateBelowFirstMilestone(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	seedStreak(t, svc, 3, "breathing", 6, 6)

	granted, err := svc.Evaluate(context.Background(), 3, "breathing")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("granted %v below first milestone", granted)
	}
}

func TestEvaluateNoStreakRow(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	granted, err := svc.Evaluate(context.Background(), 4, "meditation")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("granted %v without any streak", granted)
	}
}

func TestEvaluateGrantsOnlyNewMilestones(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	seedStreak(t, svc, 5, "meditation", 7, 7)
	if _, err := svc.Evaluate(ctx, 5, "meditation"); err != nil {
		t.Fatalf("evaluate@7: %v", err)
	}

	// Streak grows past the next milestone; only the new badge is reported.
	if err := svc.db.Model(&models.Streak{}).
		Where("user_id = ? AND activity_type = ?", 5, "meditation").
		Updates(map[string]interface{}{"current_streak": 60, "longest_streak": 60}).Error; err != nil {
		t.Fatalf("grow streak: %v", err)
	}
	granted, err := svc.Evaluate(ctx, 5, "meditation")
	if err != nil {
		t.Fatalf("evaluate@60: %v", err)
	}
	want := []string{"30-day-meditation-streak", "60-day-meditation-streak"}
	if len(granted) != 2 || granted[0] != want[0] || granted[1] != want[1] {
		t.Fatalf("granted %v, want %v", granted, want)
	}
}

func TestTrackActivityEndToEnd(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	res, err := svc.TrackActivity(ctx, 6, "meditation", "media-42", 15, 10, "2024-04-01")
	if err != nil {
		t.Fatalf("track day 1: %v", err)
	}
	if !res.StreakChanged || res.PointsEarned != 10 {
		t.Fatalf("day 1 result %+v", res)
	}

	res, err = svc.TrackActivity(ctx, 6, "meditation", "", 10, 5, "2024-04-02")
	if err != nil {
		t.Fatalf("track day 2: %v", err)
	}
	if !res.StreakChanged {
		t.Fatal("day 2 should advance the streak")
	}

	// Skip a day: streak resets, longest stays.
	if _, err := svc.TrackActivity(ctx, 6, "meditation", "", 10, 5, "2024-04-04"); err != nil {
		t.Fatalf("track day 4: %v", err)
	}
	streak, err := svc.GetStreak(ctx, 6, "meditation")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 2 {
		t.Fatalf("current=%d longest=%d, want 1/2", streak.CurrentStreak, streak.LongestStreak)
	}

	dash, err := svc.GetDashboard(ctx, 6)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalPoints != 20 {
		t.Fatalf("total points=%d want 20", dash.TotalPoints)
	}
	if len(dash.CurrentStreaks) != 1 || dash.CurrentStreaks[0].Streak != 1 {
		t.Fatalf("dashboard streaks %+v", dash.CurrentStreaks)
	}
}
