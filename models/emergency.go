package models

import "time"

// EmergencyResource is a crisis helpline or support service surfaced on
// the emergency page and attached to high-risk alerts.
type EmergencyResource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	Phone       string    `gorm:"size:32" json:"phone,omitempty"`
	URL         string    `gorm:"size:512" json:"url,omitempty"`
	Region      string    `gorm:"size:8;index;default:'us'" json:"region"`
	Language    string    `gorm:"size:8;default:'en'" json:"language"`
	Category    string    `gorm:"size:32" json:"category"` // crisis/counseling/peer-support
	Available24 bool      `gorm:"default:false" json:"available_24_7"`
	Priority    int       `gorm:"default:0;index" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmergencyAlert is written when a chat or voice message is classified as
// high risk. Follow-up by counselors happens outside this service.
type EmergencyAlert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	SessionID string    `gorm:"size:36;index" json:"session_id,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
