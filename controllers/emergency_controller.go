package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/config"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/utils"
)

const emergencyCachePrefix = "cache:emergency:"

// EmergencyController serves crisis resources and the crisis banner.
type EmergencyController struct {
	db *gorm.DB
}

// NewEmergencyController creates an EmergencyController.
func NewEmergencyController(db *gorm.DB) *EmergencyController {
	return &EmergencyController{db: db}
}

// ListResources returns helplines filtered by region and language, highest
// priority first. The endpoint is public; someone in crisis should never
// hit a login wall.
func (ec *EmergencyController) ListResources(ctx *gin.Context) {
	region := strings.TrimSpace(ctx.Query("region"))
	language := strings.TrimSpace(ctx.Query("language"))

	cacheKey := emergencyCachePrefix + region + ":" + language
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	q := ec.db.Model(&models.EmergencyResource{})
	if region != "" {
		q = q.Where("region = ?", region)
	}
	if language != "" {
		q = q.Where("language = ?", language)
	}

	var resources []models.EmergencyResource
	if err := q.Order("priority DESC").Find(&resources).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load resources")
		return
	}

	cfg := config.Get()
	payload := gin.H{
		"items": resources,
		"banner": gin.H{
			"title": cfg.CrisisBannerTitle,
			"text":  cfg.CrisisBannerText,
		},
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// ListAlerts returns recent high-risk alerts for counselor follow-up.
// Counselor/admin only.
func (ec *EmergencyController) ListAlerts(ctx *gin.Context) {
	var alerts []models.EmergencyAlert
	if err := ec.db.Order("created_at DESC").Limit(100).Find(&alerts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load alerts")
		return
	}
	utils.Success(ctx, gin.H{"items": alerts})
}
