package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.MoodLog{},
		&models.ActivityRecord{},
		&models.Streak{},
		&models.Achievement{},
		&models.Counselor{},
		&models.Appointment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newMoodRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mc := NewMoodController(db, services.NewProgressService(db))
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, userID)
	})
	r.POST("/mood", mc.LogMood)
	r.GET("/mood/history", mc.GetHistory)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogMoodUpsertsSameDay(t *testing.T) {
	db := newTestDB(t)
	r := newMoodRouter(db, 7)

	w := postJSON(t, r, "/mood", gin.H{"mood_score": 2, "notes": "rough morning", "date": "2026-03-01"})
	if w.Code != http.StatusOK {
		t.Fatalf("first log status = %d, body %s", w.Code, w.Body.String())
	}

	var first struct {
		Data struct {
			StreakUpdated bool `json:"streak_updated"`
			PointsEarned  int  `json:"points_earned"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !first.Data.StreakUpdated {
		t.Fatal("first log of the day should update the streak")
	}
	if first.Data.PointsEarned != 5 {
		t.Fatalf("points = %d, want 5", first.Data.PointsEarned)
	}

	w = postJSON(t, r, "/mood", gin.H{"mood_score": 4, "notes": "better now", "date": "2026-03-01"})
	if w.Code != http.StatusOK {
		t.Fatalf("second log status = %d, body %s", w.Code, w.Body.String())
	}

	var rows []models.MoodLog
	if err := db.Where("user_id = ?", 7).Find(&rows).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("mood rows = %d, want 1", len(rows))
	}
	if rows[0].MoodScore != 4 {
		t.Fatalf("mood score = %d, want 4 after overwrite", rows[0].MoodScore)
	}
	if rows[0].Notes != "better now" {
		t.Fatalf("notes = %q, want overwrite", rows[0].Notes)
	}
}

func TestLogMoodRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	r := newMoodRouter(db, 7)

	for _, body := range []gin.H{
		{"mood_score": 0},
		{"mood_score": 6},
		{"mood_score": 3, "date": "01-03-2026"},
	} {
		w := postJSON(t, r, "/mood", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestMoodHistoryAverage(t *testing.T) {
	db := newTestDB(t)
	r := newMoodRouter(db, 7)

	today := services.Today()
	for i, score := range []int{2, 4} {
		date := today
		if i == 1 {
			prev, err := services.PrevDay(today)
			if err != nil {
				t.Fatalf("prev day: %v", err)
			}
			date = prev
		}
		w := postJSON(t, r, "/mood", gin.H{"mood_score": score, "date": date})
		if w.Code != http.StatusOK {
			t.Fatalf("log status = %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/mood/history?days=7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Items        []models.MoodLog `json:"items"`
			AverageScore float64          `json:"average_score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Data.Items))
	}
	if resp.Data.AverageScore != 3 {
		t.Fatalf("average = %v, want 3", resp.Data.AverageScore)
	}
}
