package models

import "time"

// Appointment lifecycle states. Pending appointments await counselor
// confirmation; cancelled and completed are terminal.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment session types.
const (
	SessionVideo = "video"
	SessionAudio = "audio"
	SessionChat  = "chat"
)

// Counselor is a bookable professional profile linked to a platform user.
type Counselor struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Specializations string    `gorm:"size:255" json:"specializations"` // comma-separated
	Languages       string    `gorm:"size:128" json:"languages"`       // comma-separated
	Bio             string    `gorm:"type:text" json:"bio,omitempty"`
	ExperienceYears int       `gorm:"default:0" json:"experience_years"`
	Rating          float64   `gorm:"default:0" json:"rating"`
	TotalSessions   int       `gorm:"default:0" json:"total_sessions"`
	// No gorm default tag: a default would make gorm omit explicit false
	// values on insert, so unavailable counselors could never be stored.
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Appointment is a booked or requested counseling slot. Times are stored
// as HH:MM on a YYYY-MM-DD date and treated as half-open [start, end)
// intervals, so back-to-back bookings do not collide. Rows are never
// deleted; cancellation is a status change.
type Appointment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	CounselorID uint      `gorm:"index:idx_appt_counselor_date;not null" json:"counselor_id"`
	Date        string    `gorm:"size:10;index:idx_appt_counselor_date;not null" json:"date"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	Status      string    `gorm:"size:12;default:'pending';index" json:"status"`
	SessionType string    `gorm:"size:8;default:'video'" json:"session_type"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	MeetingURL  string    `gorm:"size:512" json:"meeting_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
