package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat session types.
const (
	SessionTypeText  = "text"
	SessionTypeVoice = "voice"
)

// Message senders.
const (
	SenderUser   = "user"
	SenderAI     = "ai"
	SenderSystem = "system"
)

// Risk levels attached to user messages.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// ChatSession is a single support conversation, text or voice.
type ChatSession struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	SessionType  string     `gorm:"size:8;default:'text'" json:"session_type"`
	Language     string     `gorm:"size:8;default:'en'" json:"language"`
	IsAnonymous  bool       `gorm:"default:false" json:"is_anonymous"`
	LastActiveAt time.Time  `gorm:"index" json:"last_active_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID session id and activity timestamp.
func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.LastActiveAt.IsZero() {
		s.LastActiveAt = time.Now()
	}
	return nil
}

// ChatMessage is one utterance within a session. SentimentScore and
// RiskLevel are only populated for user messages.
type ChatMessage struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	SessionID      string   `gorm:"size:36;index;not null" json:"session_id"`
	Sender         string   `gorm:"size:8;not null" json:"sender"`
	Message        string   `gorm:"type:text;not null" json:"message"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	RiskLevel      string   `gorm:"size:8" json:"risk_level,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
