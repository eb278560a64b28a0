package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/config"
	"github.com/Shish1928/mental-health-platform/controllers"
	"github.com/Shish1928/mental-health-platform/middleware"
	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/services"
	"github.com/Shish1928/mental-health-platform/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	ginLogPath := cfg.GinPath
	// Use application log level as reference
	gl, err := utils.NewRollingFileLogger(ginLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Aggregate request counts per day and route
	r.Use(middleware.UsageRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	assistant := services.NewAssistantService(cfg.AssistantAPIURL, cfg.AssistantAPIKey)
	progress := services.NewProgressService(db)
	booking := services.NewBookingService(db)

	authController := controllers.NewAuthController(db)
	chatController := controllers.NewChatController(db, assistant)
	voiceController := controllers.NewVoiceController(db, assistant)
	moodController := controllers.NewMoodController(db, progress)
	mediaController := controllers.NewMediaController(db, progress)
	progressController := controllers.NewProgressController(progress)
	appointmentController := controllers.NewAppointmentController(db, booking)
	emergencyController := controllers.NewEmergencyController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/anonymous", authController.AnonymousLogin)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public endpoints: crisis resources must never require a login
	api.GET("/emergency/resources", emergencyController.ListResources)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	chat := protected.Group("/chat")
	chat.POST("/sessions", chatController.StartSession)
	chat.GET("/sessions", chatController.ListSessions)
	chat.POST("/sessions/:id/messages", chatController.SendMessage)
	chat.GET("/sessions/:id/messages", chatController.GetHistory)
	chat.POST("/sessions/:id/end", chatController.EndSession)

	voice := protected.Group("/voice")
	voice.POST("/sessions/:id/audio", voiceController.ProcessAudio)
	voice.GET("/sessions/:id/interactions", voiceController.ListInteractions)

	mood := protected.Group("/mood")
	mood.POST("", moodController.LogMood)
	mood.GET("/history", moodController.GetHistory)

	media := protected.Group("/media")
	media.GET("", mediaController.ListContent)
	media.GET("/favorites", mediaController.ListFavorites)
	media.GET("/:id", mediaController.GetContent)
	media.PUT("/:id/progress", mediaController.UpdateProgress)
	media.POST("/:id/favorite", mediaController.ToggleFavorite)
	media.POST("", middleware.RoleRequired(models.RoleAdmin), mediaController.CreateContent)

	prog := protected.Group("/progress")
	prog.POST("/activity", progressController.TrackActivity)
	prog.GET("/dashboard", progressController.GetDashboard)
	prog.GET("/achievements", progressController.GetAchievements)
	prog.GET("/streaks/:type", progressController.GetStreak)

	appt := protected.Group("/appointments")
	appt.GET("/counselors", appointmentController.ListCounselors)
	appt.GET("/counselors/:id/availability", appointmentController.GetAvailability)
	appt.POST("", appointmentController.Book)
	appt.GET("", appointmentController.ListMine)
	appt.PATCH("/:id/status", appointmentController.UpdateStatus)

	protected.GET("/emergency/alerts",
		middleware.RoleRequired(models.RoleCounselor, models.RoleAdmin),
		emergencyController.ListAlerts)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
