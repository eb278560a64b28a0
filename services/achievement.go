package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shish1928/mental-health-platform/models"
)

// streakMilestones are the consecutive-day counts that earn a badge, in
// ascending order. Each milestone is worth ten points per day.
var streakMilestones = []int{7, 30, 60, 100}

// Evaluate grants every streak milestone the user has reached for the
// given activity type and returns the names granted on this call.
//
// All milestones at or below the current streak are checked every time,
// not just the newest; the unique (user, name) index makes a duplicate
// grant a no-op, so repeated calls with an unchanged streak return an
// empty list. A failed insert of one milestone is logged into the returned
// error only after the remaining milestones were still attempted.
func (p *ProgressService) Evaluate(ctx context.Context, userID uint, activityType string) ([]string, error) {
	var streak models.Streak
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load streak: %v", ErrInternal, err)
	}

	granted := []string{}
	var firstErr error
	for _, milestone := range streakMilestones {
		if streak.CurrentStreak < milestone {
			continue
		}
		name := fmt.Sprintf("%d-day-%s-streak", milestone, activityType)

		achievement := models.Achievement{
			UserID:          userID,
			AchievementType: "streak",
			AchievementName: name,
			Description:     fmt.Sprintf("Completed %d consecutive days of %s", milestone, activityType),
			PointsValue:     milestone * 10,
			EarnedAt:        time.Now(),
		}
		// DoNothing keeps the grant idempotent under races: whoever loses
		// the insert simply sees zero rows affected.
		res := p.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_name"}},
				DoNothing: true,
			}).
			Create(&achievement)
		if res.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: grant %s: %v", ErrInternal, name, res.Error)
			}
			continue
		}
		if res.RowsAffected > 0 {
			granted = append(granted, name)
		}
	}
	return granted, firstErr
}

// ListAchievements returns every badge a user has earned, newest first.
func (p *ProgressService) ListAchievements(ctx context.Context, userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("%w: list achievements: %v", ErrInternal, err)
	}
	return achievements, nil
}
