package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

// VoiceController handles audio turns: transcription, risk scoring, and
// spoken-style replies within a voice chat session.
type VoiceController struct {
	db        *gorm.DB
	assistant *services.AssistantService
}

// NewVoiceController creates a VoiceController.
func NewVoiceController(db *gorm.DB, assistant *services.AssistantService) *VoiceController {
	return &VoiceController{db: db, assistant: assistant}
}

// ProcessAudio transcribes one audio payload, scores it, and returns the
// assistant reply. The turn is also recorded as chat messages so history
// reads work the same for voice and text sessions.
func (vc *VoiceController) ProcessAudio(ctx *gin.Context) {
	type request struct {
		AudioData string `json:"audio_data" binding:"required"`
		Language  string `json:"language"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	sessionID := ctx.Param("id")

	var session models.ChatSession
	if err := vc.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40460, "session not found")
		return
	}
	if session.SessionType != models.SessionTypeVoice {
		utils.Error(ctx, http.StatusBadRequest, 40061, "not a voice session")
		return
	}
	if session.EndedAt != nil {
		utils.Error(ctx, http.StatusConflict, 40960, "session already ended")
		return
	}

	language := req.Language
	if language == "" {
		language = session.Language
	}

	started := time.Now()
	transcript, err := vc.assistant.Transcribe(req.AudioData, language)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "could not transcribe audio")
		return
	}

	score := services.AnalyzeSentiment(transcript)
	riskLevel := services.CalculateRiskLevel(score, transcript)
	reply := vc.assistant.Reply(ctx.Request.Context(), nil, transcript, language, riskLevel)
	elapsed := int(time.Since(started).Milliseconds())

	interaction := models.VoiceInteraction{
		SessionID:        session.ID,
		Transcript:       transcript,
		AIResponse:       reply,
		SentimentScore:   score,
		RiskLevel:        riskLevel,
		ProcessingTimeMs: elapsed,
	}

	err = vc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ChatMessage{
			SessionID:      session.ID,
			Sender:         models.SenderUser,
			Message:        transcript,
			SentimentScore: &score,
			RiskLevel:      riskLevel,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ChatMessage{
			SessionID: session.ID,
			Sender:    models.SenderAI,
			Message:   reply,
		}).Error; err != nil {
			return err
		}
		if riskLevel == models.RiskHigh {
			if err := tx.Create(&models.EmergencyAlert{
				UserID:    userID,
				SessionID: session.ID,
				Message:   transcript,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.ChatSession{}).
			Where("id = ?", session.ID).
			Update("last_active_at", time.Now()).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to store voice interaction")
		return
	}

	resp := gin.H{
		"transcript":         transcript,
		"reply":              reply,
		"sentiment_score":    score,
		"risk_level":         riskLevel,
		"processing_time_ms": elapsed,
	}
	if riskLevel == models.RiskHigh {
		var resources []models.EmergencyResource
		_ = vc.db.Order("priority DESC").Limit(5).Find(&resources).Error
		resp["emergency_resources"] = resources
	}
	utils.Success(ctx, resp)
}

// ListInteractions returns the voice turns of one of the caller's sessions.
func (vc *VoiceController) ListInteractions(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)
	sessionID := ctx.Param("id")

	var session models.ChatSession
	if err := vc.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40460, "session not found")
		return
	}

	var interactions []models.VoiceInteraction
	if err := vc.db.Where("session_id = ?", session.ID).
		Order("id ASC").Find(&interactions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load interactions")
		return
	}

	utils.Success(ctx, gin.H{"items": interactions})
}
