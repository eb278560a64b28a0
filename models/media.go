package models

import "time"

// MediaContent is an item in the self-help library: guided meditations,
// articles, videos and exercises.
type MediaContent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	ContentType     string    `gorm:"size:16;index;not null" json:"content_type"` // video/audio/article/exercise
	Category        string    `gorm:"size:32;index" json:"category"`
	URL             string    `gorm:"size:512;not null" json:"url"`
	ThumbnailURL    string    `gorm:"size:512" json:"thumbnail_url,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Language        string    `gorm:"size:8;index;default:'en'" json:"language"`
	DifficultyLevel string    `gorm:"size:16;default:'beginner'" json:"difficulty_level"`
	Tags            string    `gorm:"size:512" json:"tags,omitempty"` // comma-separated
	IsPremium       bool      `gorm:"default:false" json:"is_premium"`
	IsDownloadable  bool      `gorm:"default:false" json:"is_downloadable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MediaProgress tracks per-user playback position, one row per (user, media).
type MediaProgress struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index:idx_media_progress_user_media,unique;not null" json:"user_id"`
	MediaID         uint      `gorm:"index:idx_media_progress_user_media,unique;not null" json:"media_id"`
	ProgressSeconds int       `gorm:"default:0" json:"progress_seconds"`
	Completed       bool      `gorm:"default:false" json:"completed"`
	LastAccessed    time.Time `json:"last_accessed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MediaFavorite marks content a user bookmarked.
type MediaFavorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_media_fav_user_media,unique;not null" json:"user_id"`
	MediaID   uint      `gorm:"index:idx_media_fav_user_media,unique;not null" json:"media_id"`
	CreatedAt time.Time `json:"created_at"`
}
