package models

import "time"

// ActivityRecord is a raw activity event: a completed meditation, a chat
// session, a mood log. Streaks and points are derived from these.
type ActivityRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index:idx_activity_user_date" json:"user_id"`
	ActivityType    string    `gorm:"size:32;index;not null" json:"activity_type"`
	ActivityID      string    `gorm:"size:64" json:"activity_id,omitempty"`
	DurationMinutes int       `gorm:"default:0" json:"duration_minutes"`
	PointsEarned    int       `gorm:"default:0" json:"points_earned"`
	Date            string    `gorm:"size:10;index:idx_activity_user_date;not null" json:"date"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at"`
}

// Streak keeps the consecutive-day counter for one (user, activity type)
// pair. LongestStreak never decreases; CurrentStreak resets to 1 when a
// day is skipped.
type Streak struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index:idx_streak_user_type,unique;not null" json:"user_id"`
	ActivityType     string    `gorm:"size:32;index:idx_streak_user_type,unique;not null" json:"activity_type"`
	CurrentStreak    int       `gorm:"default:0" json:"current_streak"`
	LongestStreak    int       `gorm:"default:0" json:"longest_streak"`
	LastActivityDate string    `gorm:"size:10" json:"last_activity_date"` // YYYY-MM-DD, UTC calendar day
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Achievement is a badge granted exactly once per (user, name). The unique
// index backs the idempotent-grant guarantee under concurrent evaluation.
type Achievement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index:idx_achievement_user_name,unique;not null" json:"user_id"`
	AchievementType string    `gorm:"size:32;not null" json:"achievement_type"`
	AchievementName string    `gorm:"size:128;index:idx_achievement_user_name,unique;not null" json:"achievement_name"`
	Description     string    `gorm:"size:255" json:"description"`
	PointsValue     int       `gorm:"default:0" json:"points_value"`
	EarnedAt        time.Time `json:"earned_at"`
}
