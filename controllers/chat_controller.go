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

// ChatController manages support conversations with the AI assistant.
type ChatController struct {
	db        *gorm.DB
	assistant *services.AssistantService
}

// NewChatController creates a ChatController.
func NewChatController(db *gorm.DB, assistant *services.AssistantService) *ChatController {
	return &ChatController{db: db, assistant: assistant}
}

// StartSession opens a new conversation and returns the assistant's welcome message.
func (cc *ChatController) StartSession(ctx *gin.Context) {
	type request struct {
		SessionType string `json:"session_type"`
		Language    string `json:"language"`
	}
	var req request
	_ = ctx.ShouldBindJSON(&req)

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeText
	}
	if sessionType != models.SessionTypeText && sessionType != models.SessionTypeVoice {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid session type")
		return
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	session := models.ChatSession{
		UserID:      ctx.GetUint(middleware.ContextUserIDKey),
		SessionType: sessionType,
		Language:    language,
		IsAnonymous: ctx.GetBool(middleware.ContextAnonymousKey),
	}

	welcome := cc.assistant.WelcomeMessage(language)
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChatMessage{
			SessionID: session.ID,
			Sender:    models.SenderAI,
			Message:   welcome,
		}).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to start session")
		return
	}

	utils.Success(ctx, gin.H{
		"session": session,
		"message": welcome,
	})
}

// SendMessage stores a user message, scores it, and returns the assistant reply.
// High-risk messages additionally raise an emergency alert with crisis resources.
func (cc *ChatController) SendMessage(ctx *gin.Context) {
	type request struct {
		Message string `json:"message" binding:"required,max=4000"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	userID := ctx.GetUint(middleware.ContextUserIDKey)
	sessionID := ctx.Param("id")

	var session models.ChatSession
	if err := cc.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, "session not found")
		return
	}
	if session.EndedAt != nil {
		utils.Error(ctx, http.StatusConflict, 40910, "session already ended")
		return
	}

	message := utils.Sanitize(req.Message)
	score := services.AnalyzeSentiment(message)
	riskLevel := services.CalculateRiskLevel(score, message)

	// Recent turns give the assistant conversational context.
	var recent []models.ChatMessage
	if err := cc.db.Where("session_id = ?", session.ID).
		Order("id DESC").Limit(10).Find(&recent).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load history")
		return
	}
	history := make([]services.HistoryEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, services.HistoryEntry{Sender: recent[i].Sender, Message: recent[i].Message})
	}

	reply := cc.assistant.Reply(ctx.Request.Context(), history, message, session.Language, riskLevel)

	now := time.Now()
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ChatMessage{
			SessionID:      session.ID,
			Sender:         models.SenderUser,
			Message:        message,
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
				Message:   message,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.ChatSession{}).
			Where("id = ?", session.ID).
			Update("last_active_at", now).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to store messages")
		return
	}

	resp := gin.H{
		"reply":           reply,
		"sentiment_score": score,
		"risk_level":      riskLevel,
	}
	if riskLevel == models.RiskHigh {
		var resources []models.EmergencyResource
		_ = cc.db.Order("priority DESC").Limit(5).Find(&resources).Error
		resp["emergency_resources"] = resources
	}
	utils.Success(ctx, resp)
}

// GetHistory returns all messages of one of the caller's sessions.
func (cc *ChatController) GetHistory(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)
	sessionID := ctx.Param("id")

	var session models.ChatSession
	if err := cc.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, "session not found")
		return
	}

	var messages []models.ChatMessage
	if err := cc.db.Where("session_id = ?", session.ID).Order("id ASC").Find(&messages).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load messages")
		return
	}

	utils.Success(ctx, gin.H{
		"session":  session,
		"messages": messages,
	})
}

// ListSessions returns the caller's sessions, newest first.
func (cc *ChatController) ListSessions(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)

	var sessions []models.ChatSession
	if err := cc.db.Where("user_id = ?", userID).
		Order("last_active_at DESC").Limit(50).Find(&sessions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to load sessions")
		return
	}

	utils.Success(ctx, gin.H{"items": sessions})
}

// EndSession marks a session as finished.
func (cc *ChatController) EndSession(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserIDKey)
	sessionID := ctx.Param("id")

	var session models.ChatSession
	if err := cc.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, "session not found")
		return
	}
	if session.EndedAt != nil {
		utils.Success(ctx, session)
		return
	}

	now := time.Now()
	if err := cc.db.Model(&session).Update("ended_at", now).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to end session")
		return
	}
	session.EndedAt = &now
	utils.Success(ctx, session)
}
