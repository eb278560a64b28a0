package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
)

// BookingService owns appointment creation, the conflict predicate and
// status transitions.
type BookingService struct {
	db *gorm.DB
}

// NewBookingService creates a BookingService.
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// BookingRequest is a proposed counseling slot.
type BookingRequest struct {
	StudentID   uint
	CounselorID uint
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	SessionType string
	Notes       string
}

func (r *BookingRequest) validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if err := ValidateTime(r.StartTime); err != nil {
		return err
	}
	if err := ValidateTime(r.EndTime); err != nil {
		return err
	}
	if r.StartTime >= r.EndTime {
		return fmt.Errorf("%w: start time %s is not before end time %s", ErrInvalidArgument, r.StartTime, r.EndTime)
	}
	switch r.SessionType {
	case models.SessionVideo, models.SessionAudio, models.SessionChat:
	default:
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidArgument, r.SessionType)
	}
	return nil
}

// HasConflict reports whether [startTime, endTime) overlaps any live
// appointment of the counselor on that date. Intervals are half-open, so
// an appointment ending exactly when another starts is not a conflict.
// Cancelled and completed appointments never conflict.
func (b *BookingService) HasConflict(ctx context.Context, counselorID uint, date, startTime, endTime string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}
	if err := ValidateTime(startTime); err != nil {
		return false, err
	}
	if err := ValidateTime(endTime); err != nil {
		return false, err
	}
	return b.hasConflict(b.db.WithContext(ctx), counselorID, date, startTime, endTime)
}

func (b *BookingService) hasConflict(tx *gorm.DB, counselorID uint, date, startTime, endTime string) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("counselor_id = ? AND date = ?", counselorID, date).
		Where("status NOT IN ?", []string{models.AppointmentCancelled, models.AppointmentCompleted}).
		Where("start_time < ? AND ? < end_time", endTime, startTime).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
	}
	return count > 0, nil
}

// BookAppointment validates the slot and inserts a pending appointment.
// The counselor row is locked FOR UPDATE for the duration of the check and
// insert, so two concurrent bookings of overlapping slots serialize on it
// (MySQL offers no range exclusion constraint to lean on).
func (b *BookingService) BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		StudentID:   req.StudentID,
		CounselorID: req.CounselorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.AppointmentPending,
		SessionType: req.SessionType,
		Notes:       req.Notes,
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counselor models.Counselor
		err := lockForUpdate(tx).
			First(&counselor, req.CounselorID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: counselor %d", ErrNotFound, req.CounselorID)
		}
		if err != nil {
			return fmt.Errorf("%w: load counselor: %v", ErrInternal, err)
		}
		if !counselor.IsAvailable {
			return fmt.Errorf("%w: counselor is not available", ErrPreconditionFailed)
		}

		conflict, err := b.hasConflict(tx, req.CounselorID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return fmt.Errorf("%w: time slot is already booked", ErrPreconditionFailed)
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return fmt.Errorf("%w: create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// legalTransitions encodes the appointment state machine; cancelled and
// completed are terminal.
var legalTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
}

// UpdateStatus moves an appointment to a new status, rejecting transitions
// the state machine does not allow.
func (b *BookingService) UpdateStatus(ctx context.Context, appointmentID uint, newStatus string) (*models.Appointment, error) {
	switch newStatus {
	case models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, newStatus)
	}

	var appointment models.Appointment
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			First(&appointment, appointmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
		}
		if err != nil {
			return fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
		}

		allowed := false
		for _, next := range legalTransitions[appointment.Status] {
			if next == newStatus {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: cannot move appointment from %s to %s", ErrPreconditionFailed, appointment.Status, newStatus)
		}

		appointment.Status = newStatus
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("%w: save appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
