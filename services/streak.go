package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
)

// RecordActivity advances the consecutive-day counter for one
// (user, activity type) pair and reports whether anything changed.
//
// The streak row is read under a FOR UPDATE lock so a concurrent event for
// the same pair serializes here; two same-day events are a no-op for the
// loser either way because same-day re-logs never mutate.
func (p *ProgressService) RecordActivity(ctx context.Context, userID uint, activityType, date string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}

	changed := false
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var streak models.Streak
		err := lockForUpdate(tx).
			Where("user_id = ? AND activity_type = ?", userID, activityType).
			First(&streak).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			streak = models.Streak{
				UserID:           userID,
				ActivityType:     activityType,
				CurrentStreak:    1,
				LongestStreak:    1,
				LastActivityDate: date,
			}
			if err := tx.Create(&streak).Error; err != nil {
				return fmt.Errorf("%w: create streak: %v", ErrInternal, err)
			}
			changed = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: load streak: %v", ErrInternal, err)
		}

		if streak.LastActivityDate == date {
			// Same day re-logged, nothing to do.
			return nil
		}

		prev, err := PrevDay(date)
		if err != nil {
			return err
		}

		if streak.LastActivityDate == prev {
			streak.CurrentStreak++
		} else {
			// Gap of two or more days, or a backdated event: the chain is
			// broken and restarts at one.
			streak.CurrentStreak = 1
		}
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.LastActivityDate = date

		if err := tx.Save(&streak).Error; err != nil {
			return fmt.Errorf("%w: save streak: %v", ErrInternal, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// GetStreak returns the streak row for one (user, activity type) pair, or
// ErrNotFound when the user has never logged that activity.
func (p *ProgressService) GetStreak(ctx context.Context, userID uint, activityType string) (*models.Streak, error) {
	var streak models.Streak
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no streak for activity %q", ErrNotFound, activityType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load streak: %v", ErrInternal, err)
	}
	return &streak, nil
}
