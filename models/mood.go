package models

import "time"

// MoodLog stores one mood entry per user per calendar day. Re-logging the
// same day overwrites the score and notes rather than adding a second row.
type MoodLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_mood_user_date,unique;not null" json:"user_id"`
	Date      string    `gorm:"size:10;index:idx_mood_user_date,unique;not null" json:"date"` // YYYY-MM-DD
	MoodScore int       `gorm:"not null" json:"mood_score"`                                   // 1..5
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
