package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

const mediaCachePrefix = "cache:media:list:"

// MediaController serves the self-help content library.
type MediaController struct {
	db       *gorm.DB
	progress *services.ProgressService
}

// NewMediaController creates a MediaController.
func NewMediaController(db *gorm.DB, progress *services.ProgressService) *MediaController {
	return &MediaController{db: db, progress: progress}
}

// ListContent returns library items filtered by type, category, language,
// difficulty and tag. Results are cached per filter combination.
func (mc *MediaController) ListContent(ctx *gin.Context) {
	contentType := strings.TrimSpace(ctx.Query("content_type"))
	category := strings.TrimSpace(ctx.Query("category"))
	language := strings.TrimSpace(ctx.Query("language"))
	difficulty := strings.TrimSpace(ctx.Query("difficulty"))
	tag := strings.TrimSpace(ctx.Query("tag"))

	page, pageSize := 1, 20
	if v := ctx.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := ctx.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%s:%s:%d:%d", mediaCachePrefix, contentType, category, language, difficulty, tag, page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	q := mc.db.Model(&models.MediaContent{})
	if contentType != "" {
		q = q.Where("content_type = ?", contentType)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if language != "" {
		q = q.Where("language = ?", language)
	}
	if difficulty != "" {
		q = q.Where("difficulty_level = ?", difficulty)
	}
	if tag != "" {
		q = q.Where("tags LIKE ?", "%"+tag+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to count content")
		return
	}

	var items []models.MediaContent
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load content")
		return
	}

	payload := gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)
	utils.Success(ctx, payload)
}

// GetContent returns one item with the caller's progress and favorite flag.
func (mc *MediaController) GetContent(ctx *gin.Context) {
	id := ctx.Param("id")

	var item models.MediaContent
	if err := mc.db.First(&item, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "content not found")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)

	var progress models.MediaProgress
	hasProgress := mc.db.Where("user_id = ? AND media_id = ?", userID, item.ID).First(&progress).Error == nil

	var favCount int64
	_ = mc.db.Model(&models.MediaFavorite{}).
		Where("user_id = ? AND media_id = ?", userID, item.ID).
		Count(&favCount).Error

	resp := gin.H{
		"content":     item,
		"is_favorite": favCount > 0,
	}
	if hasProgress {
		resp["progress"] = progress
	}
	utils.Success(ctx, resp)
}

// UpdateProgress upserts the caller's playback position. Completing an item
// for the first time feeds the meditation streak and awards points.
func (mc *MediaController) UpdateProgress(ctx *gin.Context) {
	type request struct {
		ProgressSeconds int  `json:"progress_seconds" binding:"min=0"`
		Completed       bool `json:"completed"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	id := ctx.Param("id")
	var item models.MediaContent
	if err := mc.db.First(&item, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "content not found")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)

	var existing models.MediaProgress
	alreadyCompleted := mc.db.
		Where("user_id = ? AND media_id = ? AND completed = ?", userID, item.ID, true).
		First(&existing).Error == nil

	now := time.Now()
	record := models.MediaProgress{
		UserID:          userID,
		MediaID:         item.ID,
		ProgressSeconds: req.ProgressSeconds,
		Completed:       req.Completed || alreadyCompleted,
		LastAccessed:    now,
	}
	if err := mc.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress_seconds": record.ProgressSeconds,
			"completed":        record.Completed,
			"last_accessed":    now,
			"updated_at":       now,
		}),
	}).Create(&record).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to store progress")
		return
	}

	resp := gin.H{"progress": record}
	if req.Completed && !alreadyCompleted {
		activityType := "meditation"
		if item.ContentType == "article" {
			activityType = "reading"
		}
		result, err := mc.progress.TrackActivity(ctx.Request.Context(), userID, activityType,
			strconv.FormatUint(uint64(item.ID), 10), item.DurationMinutes, 10, services.Today())
		if err == nil {
			resp["points_earned"] = result.PointsEarned
			resp["streak_updated"] = result.StreakChanged
			resp["new_achievements"] = result.NewAchievements
		}
	}
	utils.Success(ctx, resp)
}

// ToggleFavorite bookmarks or unbookmarks an item for the caller.
func (mc *MediaController) ToggleFavorite(ctx *gin.Context) {
	id := ctx.Param("id")
	var item models.MediaContent
	if err := mc.db.First(&item, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "content not found")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)

	var fav models.MediaFavorite
	err := mc.db.Where("user_id = ? AND media_id = ?", userID, item.ID).First(&fav).Error
	if err == nil {
		if err := mc.db.Delete(&fav).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to remove favorite")
			return
		}
		utils.Success(ctx, gin.H{"is_favorite": false})
		return
	}

	fav = models.MediaFavorite{UserID: userID, MediaID: item.ID}
	if err := mc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
		DoNothing: true,
	}).Create(&fav).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to add favorite")
		return
	}
	utils.Success(ctx, gin.H{"is_favorite": true})
}

// ListFavorites returns the caller's bookmarked content.
func (mc *MediaController) ListFavorites(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)

	var items []models.MediaContent
	if err := mc.db.
		Joins("JOIN media_favorites ON media_favorites.media_id = media_contents.id").
		Where("media_favorites.user_id = ?", userID).
		Order("media_favorites.created_at DESC").
		Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to load favorites")
		return
	}

	utils.Success(ctx, gin.H{"items": items})
}

// CreateContent adds a library item. Admin only.
func (mc *MediaController) CreateContent(ctx *gin.Context) {
	var item models.MediaContent
	if err := ctx.ShouldBindJSON(&item); err != nil || item.Title == "" || item.URL == "" || item.ContentType == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid content payload")
		return
	}
	item.ID = 0
	item.Title = utils.Sanitize(item.Title)
	item.Description = utils.Sanitize(item.Description)

	if err := mc.db.Create(&item).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to create content")
		return
	}
	utils.InvalidateByPrefix(mediaCachePrefix)
	utils.Success(ctx, item)
}
