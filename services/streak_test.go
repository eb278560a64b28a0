package services

import (
	"context"
	"errors"
	"testing"
)

func TestRecordActivityConsecutiveDays(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	for i, day := range days {
		changed, err := svc.RecordActivity(ctx, 1, "meditation", day)
		if err != nil {
			t.Fatalf("day %s: %v", day, err)
		}
		if !changed {
			t.Fatalf("day %s: expected streak change", day)
		}
		streak, err := svc.GetStreak(ctx, 1, "meditation")
		if err != nil {
			t.Fatalf("get streak: %v", err)
		}
		if streak.CurrentStreak != i+1 {
			t.Fatalf("day %s: current=%d want %d", day, streak.CurrentStreak, i+1)
		}
		if streak.LongestStreak != streak.CurrentStreak {
			t.Fatalf("day %s: longest=%d should track current=%d", day, streak.LongestStreak, streak.CurrentStreak)
		}
	}
}

func TestRecordActivitySameDayIdempotent(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.RecordActivity(ctx, 1, "journaling", "2024-03-10"); err != nil {
		t.Fatalf("first: %v", err)
	}
	changed, err := svc.RecordActivity(ctx, 1, "journaling", "2024-03-10")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if changed {
		t.Fatal("same-day re-log must not report change")
	}
	streak, err := svc.GetStreak(ctx, 1, "journaling")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 1 || streak.LastActivityDate != "2024-03-10" {
		t.Fatalf("streak mutated by same-day re-log: %+v", streak)
	}
}

func TestRecordActivityGapResets(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	// Day 1 and 2 build a streak of 2; skipping day 3 resets current to 1
	// while longest stays at 2.
	for _, day := range []string{"2024-06-01", "2024-06-02"} {
		if _, err := svc.RecordActivity(ctx, 7, "breathing", day); err != nil {
			t.Fatalf("day %s: %v", day, err)
		}
	}
	changed, err := svc.RecordActivity(ctx, 7, "breathing", "2024-06-04")
	if err != nil {
		t.Fatalf("post-gap: %v", err)
	}
	if !changed {
		t.Fatal("a reset is still a change")
	}
	streak, err := svc.GetStreak(ctx, 7, "breathing")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if streak.CurrentStreak != 1 {
		t.Fatalf("current=%d want 1 after gap", streak.CurrentStreak)
	}
	if streak.LongestStreak != 2 {
		t.Fatalf("longest=%d want 2 after gap", streak.LongestStreak)
	}
	if streak.LastActivityDate != "2024-06-04" {
		t.Fatalf("last date=%s want 2024-06-04", streak.LastActivityDate)
	}
}

func TestRecordActivityBackdatedResets(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	for _, day := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		if _, err := svc.RecordActivity(ctx, 2, "mood-log", day); err != nil {
			t.Fatalf("day %s: %v", day, err)
		}
	}
	// An earlier date than the stored one breaks the chain.
	if _, err := svc.RecordActivity(ctx, 2, "mood-log", "2024-05-20"); err != nil {
		t.Fatalf("backdated: %v", err)
	}
	streak, err := svc.GetStreak(ctx, 2, "mood-log")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 3 {
		t.Fatalf("got current=%d longest=%d, want 1/3", streak.CurrentStreak, streak.LongestStreak)
	}
}

func TestRecordActivityLongestMonotonic(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	days := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", // streak 3
		"2024-01-10", "2024-01-11", // reset, streak 2
		"2024-01-20", // reset, streak 1
	}
	prevLongest := 0
	for _, day := range days {
		if _, err := svc.RecordActivity(ctx, 3, "meditation", day); err != nil {
			t.Fatalf("day %s: %v", day, err)
		}
		streak, err := svc.GetStreak(ctx, 3, "meditation")
		if err != nil {
			t.Fatalf("get streak: %v", err)
		}
		if streak.LongestStreak < prevLongest {
			t.Fatalf("longest decreased: %d -> %d", prevLongest, streak.LongestStreak)
		}
		if streak.LongestStreak < streak.CurrentStreak {
			t.Fatalf("invariant broken: longest=%d < current=%d", streak.LongestStreak, streak.CurrentStreak)
		}
		prevLongest = streak.LongestStreak
	}
	final, _ := svc.GetStreak(ctx, 3, "meditation")
	if final.CurrentStreak != 1 || final.LongestStreak != 3 {
		t.Fatalf("final current=%d longest=%d, want 1/3", final.CurrentStreak, final.LongestStreak)
	}
}

func TestRecordActivityStreaksIndependentPerType(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.RecordActivity(ctx, 4, "meditation", "2024-02-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordActivity(ctx, 4, "journaling", "2024-02-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordActivity(ctx, 4, "meditation", "2024-02-02"); err != nil {
		t.Fatal(err)
	}

	med, _ := svc.GetStreak(ctx, 4, "meditation")
	jrn, _ := svc.GetStreak(ctx, 4, "journaling")
	if med.CurrentStreak != 2 || jrn.CurrentStreak != 1 {
		t.Fatalf("meditation=%d journaling=%d, want 2/1", med.CurrentStreak, jrn.CurrentStreak)
	}
}

func TestRecordActivityRejectsBadDate(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	_, err := svc.RecordActivity(context.Background(), 1, "meditation", "01/02/2024")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestGetStreakNotFound(t *testing.T) {
	svc := NewProgressService(newTestDB(t))
	_, err := svc.GetStreak(context.Background(), 99, "meditation")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
