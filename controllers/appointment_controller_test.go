package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
)

func postPatch(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAppointmentRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ac := NewAppointmentController(db, services.NewBookingService(db))
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, userID)
		ctx.Set(middleware.ContextRoleKey, role)
	})
	r.PATCH("/appointments/:id/status", ac.UpdateStatus)
	return r
}

func seedTestCounselor(t *testing.T, db *gorm.DB, available bool) models.Counselor {
	t.Helper()
	c := models.Counselor{
		UserID:          200,
		Specializations: "stress",
		Languages:       "en",
		IsAvailable:     available,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed counselor: %v", err)
	}
	return c
}

func TestUpdateStatusCompletedBumpsSessionCount(t *testing.T) {
	db := newTestDB(t)
	c := seedTestCounselor(t, db, true)
	appt := models.Appointment{
		StudentID:   5,
		CounselorID: c.ID,
		Date:        "2026-04-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      models.AppointmentConfirmed,
		SessionType: models.SessionVideo,
	}
	if err := db.Create(&appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	r := newAppointmentRouter(db, 1, models.RoleAdmin)
	w := postPatch(t, r, "/appointments/1/status", gin.H{"status": models.AppointmentCompleted})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got models.Counselor
	if err := db.First(&got, c.ID).Error; err != nil {
		t.Fatalf("reload counselor: %v", err)
	}
	if got.TotalSessions != 1 {
		t.Fatalf("total sessions = %d, want 1", got.TotalSessions)
	}
}

func TestUpdateStatusConfirmedAssignsMeetingURL(t *testing.T) {
	db := newTestDB(t)
	c := seedTestCounselor(t, db, true)
	appt := models.Appointment{
		StudentID:   5,
		CounselorID: c.ID,
		Date:        "2026-04-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      models.AppointmentPending,
		SessionType: models.SessionVideo,
	}
	if err := db.Create(&appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	r := newAppointmentRouter(db, 1, models.RoleAdmin)
	w := postPatch(t, r, "/appointments/1/status", gin.H{"status": models.AppointmentConfirmed})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Appointment `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.MeetingURL == "" {
		t.Fatal("confirmed video appointment should carry a meeting url")
	}
}

func TestUpdateStatusStudentCannotComplete(t *testing.T) {
	db := newTestDB(t)
	c := seedTestCounselor(t, db, true)
	appt := models.Appointment{
		StudentID:   5,
		CounselorID: c.ID,
		Date:        "2026-04-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      models.AppointmentConfirmed,
		SessionType: models.SessionVideo,
	}
	if err := db.Create(&appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	r := newAppointmentRouter(db, 5, models.RoleStudent)
	w := postPatch(t, r, "/appointments/1/status", gin.H{"status": models.AppointmentCompleted})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
