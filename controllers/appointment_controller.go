package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

const counselorCachePrefix = "cache:counselors:"

// AppointmentController exposes counselor discovery and appointment booking.
type AppointmentController struct {
	db      *gorm.DB
	booking *services.BookingService
}

// NewAppointmentController creates an AppointmentController.
func NewAppointmentController(db *gorm.DB, booking *services.BookingService) *AppointmentController {
	return &AppointmentController{db: db, booking: booking}
}

// ListCounselors returns available counselors, optionally filtered by
// specialization and language. Results are cached per filter combination.
func (ac *AppointmentController) ListCounselors(ctx *gin.Context) {
	specialization := strings.TrimSpace(ctx.Query("specialization"))
	language := strings.TrimSpace(ctx.Query("language"))

	cacheKey := counselorCachePrefix + specialization + ":" + language
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	q := ac.db.Model(&models.Counselor{}).Where("is_available = ?", true)
	if specialization != "" {
		q = q.Where("specializations LIKE ?", "%"+specialization+"%")
	}
	if language != "" {
		q = q.Where("languages LIKE ?", "%"+language+"%")
	}

	var counselors []models.Counselor
	if err := q.Order("rating DESC").Find(&counselors).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load counselors")
		return
	}

	payload := gin.H{"items": counselors}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)
	utils.Success(ctx, payload)
}

// GetAvailability returns the booked slots of a counselor on a given date so
// clients can render free ranges.
func (ac *AppointmentController) GetAvailability(ctx *gin.Context) {
	counselorID := ctx.Param("id")
	date := ctx.Query("date")
	if _, err := services.ParseDate(date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid date, expected YYYY-MM-DD")
		return
	}

	var counselor models.Counselor
	if err := ac.db.First(&counselor, counselorID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40450, "counselor not found")
		return
	}

	var booked []models.Appointment
	if err := ac.db.
		Select("start_time", "end_time", "status").
		Where("counselor_id = ? AND date = ?", counselor.ID, date).
		Where("status NOT IN ?", []string{models.AppointmentCancelled, models.AppointmentCompleted}).
		Order("start_time ASC").
		Find(&booked).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load availability")
		return
	}

	utils.Success(ctx, gin.H{
		"counselor_id": counselor.ID,
		"date":         date,
		"booked_slots": booked,
	})
}

// Book creates a pending appointment for the caller. Anonymous sessions
// cannot book; counselors need a named student to schedule with.
func (ac *AppointmentController) Book(ctx *gin.Context) {
	if ctx.GetBool(middleware.ContextAnonymousKey) {
		utils.Error(ctx, http.StatusForbidden, 40350, "appointments require a registered account")
		return
	}

	type request struct {
		CounselorID uint   `json:"counselor_id" binding:"required"`
		Date        string `json:"date" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"`
		EndTime     string `json:"end_time" binding:"required"`
		SessionType string `json:"session_type"`
		Notes       string `json:"notes" binding:"max=2000"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionVideo
	}

	appointment, err := ac.booking.BookAppointment(ctx.Request.Context(), services.BookingRequest{
		StudentID:   ctx.GetUint(middleware.ContextUserIDKey),
		CounselorID: req.CounselorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SessionType: sessionType,
		Notes:       utils.Sanitize(req.Notes),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			utils.Error(ctx, http.StatusBadRequest, 40052, err.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40450, "counselor not found")
		case errors.Is(err, services.ErrPreconditionFailed):
			utils.Error(ctx, http.StatusConflict, 40950, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to book appointment")
		}
		return
	}

	utils.Success(ctx, appointment)
}

// ListMine returns the caller's appointments, as student or counselor
// depending on role.
func (ac *AppointmentController) ListMine(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)
	role := ctx.GetString(middleware.ContextRoleKey)

	q := ac.db.Model(&models.Appointment{})
	if role == models.RoleCounselor {
		var counselor models.Counselor
		if err := ac.db.Where("user_id = ?", userID).First(&counselor).Error; err != nil {
			utils.Error(ctx, http.StatusNotFound, 40451, "counselor profile not found")
			return
		}
		q = q.Where("counselor_id = ?", counselor.ID)
	} else {
		q = q.Where("student_id = ?", userID)
	}

	if status := ctx.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.Order("date DESC, start_time DESC").Limit(100).Find(&appointments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to load appointments")
		return
	}

	utils.Success(ctx, gin.H{"items": appointments})
}

// UpdateStatus moves an appointment through its lifecycle. Students may only
// cancel their own appointments; confirm and complete belong to the
// counselor side (or admins).
func (ac *AppointmentController) UpdateStatus(ctx *gin.Context) {
	type request struct {
		Status string `json:"status" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40053, "invalid request payload")
		return
	}

	idStr := ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, "invalid appointment id")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	role := ctx.GetString(middleware.ContextRoleKey)

	var appointment models.Appointment
	if err := ac.db.First(&appointment, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40452, "appointment not found")
		return
	}

	switch role {
	case models.RoleAdmin:
	case models.RoleCounselor:
		var counselor models.Counselor
		if err := ac.db.Where("user_id = ?", userID).First(&counselor).Error; err != nil || counselor.ID != appointment.CounselorID {
			utils.Error(ctx, http.StatusForbidden, 40351, "not your appointment")
			return
		}
	default:
		if appointment.StudentID != userID || req.Status != models.AppointmentCancelled {
			utils.Error(ctx, http.StatusForbidden, 40352, "students may only cancel their own appointments")
			return
		}
	}

	updated, err := ac.booking.UpdateStatus(ctx.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			utils.Error(ctx, http.StatusBadRequest, 40055, err.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40452, "appointment not found")
		case errors.Is(err, services.ErrPreconditionFailed):
			utils.Error(ctx, http.StatusConflict, 40951, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to update appointment")
		}
		return
	}

	// Side effects outside the state machine: a join link on confirmation,
	// session counter on completion.
	switch updated.Status {
	case models.AppointmentConfirmed:
		if updated.MeetingURL == "" && updated.SessionType != models.SessionChat {
			url := "https://meet.mindbridge.app/" + uuid.NewString()
			if err := ac.db.Model(updated).Update("meeting_url", url).Error; err == nil {
				updated.MeetingURL = url
			}
		}
	case models.AppointmentCompleted:
		if err := ac.db.Model(&models.Counselor{}).
			Where("id = ?", updated.CounselorID).
			Update("total_sessions", gorm.Expr("total_sessions + 1")).Error; err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("failed to bump session count for counselor %d: %v", updated.CounselorID, err)
		}
	}

	utils.Success(ctx, updated)
}
