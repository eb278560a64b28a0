package models

import "time"

// VoiceInteraction records one processed audio turn: the transcript, the
// generated reply and how long processing took.
type VoiceInteraction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SessionID        string    `gorm:"size:36;index;not null" json:"session_id"`
	Transcript       string    `gorm:"type:text" json:"transcript"`
	AIResponse       string    `gorm:"type:text" json:"ai_response"`
	SentimentScore   float64   `json:"sentiment_score"`
	RiskLevel        string    `gorm:"size:8" json:"risk_level"`
	ProcessingTimeMs int       `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}
