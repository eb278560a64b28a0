package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
)

func seedCounselor(t *testing.T, db *gorm.DB, available bool) models.Counselor {
	t.Helper()
	c := models.Counselor{
		UserID:          100,
		Specializations: "anxiety,stress",
		Languages:       "en,es",
		Rating:          4.8,
		IsAvailable:     available,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed counselor: %v", err)
	}
	return c
}

func TestCounselorStoredUnavailable(t *testing.T) {
	db := newTestDB(t)
	c := seedCounselor(t, db, false)

	var got models.Counselor
	if err := db.First(&got, c.ID).Error; err != nil {
		t.Fatalf("reload counselor: %v", err)
	}
	if got.IsAvailable {
		t.Fatal("counselor created with IsAvailable=false but stored as available")
	}
}

func seedAppointment(t *testing.T, db *gorm.DB, counselorID uint, date, start, end, status string) models.Appointment {
	t.Helper()
	a := models.Appointment{
		StudentID:   1,
		CounselorID: counselorID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
		SessionType: models.SessionVideo,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return a
}

func TestHasConflictOverlap(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)

	seedAppointment(t, db, c.ID, "2024-01-10", "10:30", "11:30", models.AppointmentPending)

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"partial overlap front", "10:00", "11:00", true},
		{"partial overlap back", "11:00", "12:00", true},
		{"contained", "10:45", "11:15", true},
		{"containing", "10:00", "12:00", true},
		{"identical", "10:30", "11:30", true},
		{"touching before", "09:30", "10:30", false},
		{"touching after", "11:30", "12:30", false},
		{"disjoint", "13:00", "14:00", false},
		{"zero length at start", "10:30", "10:30", false},
	}
	for _, tc := range cases {
		got, err := svc.HasConflict(ctx, c.ID, "2024-01-10", tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: HasConflict(%s,%s)=%v want %v", tc.name, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestHasConflictZeroLength(t *testing.T) {
	// A zero-length interval is empty under the half-open rule and can
	// never overlap anything.
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)
	seedAppointment(t, db, c.ID, "2024-01-10", "10:00", "11:00", models.AppointmentConfirmed)

	got, err := svc.HasConflict(ctx, c.ID, "2024-01-10", "10:00", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("zero-length interval at the start boundary must not conflict")
	}
}

func TestHasConflictIgnoresTerminalStatuses(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)

	seedAppointment(t, db, c.ID, "2024-01-10", "10:00", "11:00", models.AppointmentCancelled)
	seedAppointment(t, db, c.ID, "2024-01-10", "10:00", "11:00", models.AppointmentCompleted)

	got, err := svc.HasConflict(ctx, c.ID, "2024-01-10", "10:00", "11:00")
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("cancelled/completed appointments must not conflict")
	}
}

func TestHasConflictScopedToCounselorAndDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c1 := seedCounselor(t, db, true)
	c2 := seedCounselor(t, db, true)

	seedAppointment(t, db, c1.ID, "2024-01-10", "10:00", "11:00", models.AppointmentConfirmed)

	if got, _ := svc.HasConflict(ctx, c2.ID, "2024-01-10", "10:00", "11:00"); got {
		t.Fatal("other counselor's appointment should not conflict")
	}
	if got, _ := svc.HasConflict(ctx, c1.ID, "2024-01-11", "10:00", "11:00"); got {
		t.Fatal("other date should not conflict")
	}
}

func TestBookAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)

	appt, err := svc.BookAppointment(ctx, BookingRequest{
		StudentID:   5,
		CounselorID: c.ID,
		Date:        "2024-01-10",
		StartTime:   "10:00",
		EndTime:     "11:00",
		SessionType: models.SessionVideo,
		Notes:       "first session",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.ID == 0 || appt.Status != models.AppointmentPending {
		t.Fatalf("unexpected appointment %+v", appt)
	}

	// Back-to-back slot is allowed; overlapping is not.
	if _, err := svc.BookAppointment(ctx, BookingRequest{
		StudentID: 6, CounselorID: c.ID, Date: "2024-01-10",
		StartTime: "11:00", EndTime: "12:00", SessionType: models.SessionChat,
	}); err != nil {
		t.Fatalf("touching slot should book: %v", err)
	}
	_, err = svc.BookAppointment(ctx, BookingRequest{
		StudentID: 7, CounselorID: c.ID, Date: "2024-01-10",
		StartTime: "10:30", EndTime: "11:30", SessionType: models.SessionVideo,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("overlap: want ErrPreconditionFailed, got %v", err)
	}
}

func TestBookAppointmentCounselorMissing(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		StudentID: 1, CounselorID: 999, Date: "2024-01-10",
		StartTime: "10:00", EndTime: "11:00", SessionType: models.SessionVideo,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestBookAppointmentCounselorUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	c := seedCounselor(t, db, false)

	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		StudentID: 1, CounselorID: c.ID, Date: "2024-01-10",
		StartTime: "10:00", EndTime: "11:00", SessionType: models.SessionVideo,
	})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("want ErrPreconditionFailed, got %v", err)
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d appointments inserted for unavailable counselor", count)
	}
}

func TestBookAppointmentInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	c := seedCounselor(t, db, true)
	ctx := context.Background()

	cases := []BookingRequest{
		{StudentID: 1, CounselorID: c.ID, Date: "Jan 10", StartTime: "10:00", EndTime: "11:00", SessionType: models.SessionVideo},
		{StudentID: 1, CounselorID: c.ID, Date: "2024-01-10", StartTime: "25:00", EndTime: "11:00", SessionType: models.SessionVideo},
		{StudentID: 1, CounselorID: c.ID, Date: "2024-01-10", StartTime: "11:00", EndTime: "10:00", SessionType: models.SessionVideo},
		{StudentID: 1, CounselorID: c.ID, Date: "2024-01-10", StartTime: "10:00", EndTime: "11:00", SessionType: "hologram"},
	}
	for i, req := range cases {
		if _, err := svc.BookAppointment(ctx, req); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("case %d: want ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)

	appt := seedAppointment(t, db, c.ID, "2024-01-10", "10:00", "11:00", models.AppointmentPending)

	got, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentConfirmed)
	if err != nil {
		t.Fatalf("pending->confirmed: %v", err)
	}
	if got.Status != models.AppointmentConfirmed {
		t.Fatalf("status=%s", got.Status)
	}

	if _, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentCompleted); err != nil {
		t.Fatalf("confirmed->completed: %v", err)
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentCancelled); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("completed->cancelled: want ErrPreconditionFailed, got %v", err)
	}

	// Pending cannot jump straight to completed.
	appt2 := seedAppointment(t, db, c.ID, "2024-01-11", "10:00", "11:00", models.AppointmentPending)
	if _, err := svc.UpdateStatus(ctx, appt2.ID, models.AppointmentCompleted); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("pending->completed: want ErrPreconditionFailed, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, 404, models.AppointmentConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing appointment: want ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, appt2.ID, "paused"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown status: want ErrInvalidArgument, got %v", err)
	}
}

func TestConflictFreedAfterCancellation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	ctx := context.Background()
	c := seedCounselor(t, db, true)

	appt := seedAppointment(t, db, c.ID, "2024-01-10", "10:00", "11:00", models.AppointmentPending)
	if got, _ := svc.HasConflict(ctx, c.ID, "2024-01-10", "10:00", "11:00"); !got {
		t.Fatal("expected conflict before cancellation")
	}
	if _, err := svc.UpdateStatus(ctx, appt.ID, models.AppointmentCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got, _ := svc.HasConflict(ctx, c.ID, "2024-01-10", "10:00", "11:00"); got {
		t.Fatal("cancelled appointment still conflicts")
	}
}
