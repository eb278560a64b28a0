package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shish1928/mental-health-platform/models"
	"github.com/Shish1928/mental-health-platform/utils"
)

const tokenDuration = 72 * time.Hour

// AuthController handles registration, login, anonymous sessions, and profile access.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// sanitizeUserResponse strips credential fields from the user payload.
func sanitizeUserResponse(u models.User) gin.H {
	return gin.H{
		"id":                 u.ID,
		"username":           u.Username,
		"email":              u.Email,
		"role":               u.Role,
		"is_anonymous":       u.IsAnonymous,
		"anonymous_id":       u.AnonymousID,
		"first_name":         u.FirstName,
		"last_name":          u.LastName,
		"preferred_language": u.PreferredLanguage,
		"created_at":         u.CreatedAt,
	}
}

// Register handles local account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username          string `json:"username" binding:"required,min=3,max=64"`
		Email             string `json:"email" binding:"required,email"`
		Password          string `json:"password" binding:"required,min=6"`
		FirstName         string `json:"first_name"`
		LastName          string `json:"last_name"`
		PreferredLanguage string `json:"preferred_language"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var count int64
	if err := a.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check existing users")
		return
	}
	if count > 0 {
		utils.Error(ctx, http.StatusConflict, 40901, "username or email already taken")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	lang := req.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	user := models.User{
		Username:          req.Username,
		Email:             strings.ToLower(req.Email),
		PasswordHash:      hash,
		Role:              models.RoleStudent,
		FirstName:         utils.Sanitize(req.FirstName),
		LastName:          utils.Sanitize(req.LastName),
		PreferredLanguage: lang,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, false, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// Login authenticates with username or email plus password.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.
		Where("username = ? OR email = ?", req.Username, strings.ToLower(req.Username)).
		First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if user.IsAnonymous || !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, false, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// AnonymousLogin creates a throwaway student account identified only by a UUID.
// Chat and mood features work; appointments still require a named account.
func (a *AuthController) AnonymousLogin(ctx *gin.Context) {
	type request struct {
		AnonymousID       string `json:"anonymous_id"`
		PreferredLanguage string `json:"preferred_language"`
	}
	var req request
	_ = ctx.ShouldBindJSON(&req)
	lang := req.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	// Resume an existing anonymous identity when the client presents its id.
	if req.AnonymousID != "" {
		var user models.User
		if err := a.db.Where("anonymous_id = ? AND is_anonymous = ?", req.AnonymousID, true).
			First(&user).Error; err == nil {
			token, err := utils.GenerateToken(user.ID, user.Username, user.Role, true, tokenDuration)
			if err != nil {
				utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
				return
			}
			utils.Success(ctx, gin.H{
				"token": token,
				"user":  sanitizeUserResponse(user),
			})
			return
		}
	}

	anonID := uuid.NewString()
	user := models.User{
		Username:          "anon-" + anonID[:8],
		Role:              models.RoleStudent,
		IsAnonymous:       true,
		AnonymousID:       anonID,
		PreferredLanguage: lang,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to create anonymous user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, true, tokenDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenDuration)
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetUint("user_id")

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, sanitizeUserResponse(user))
}

// UpdateProfile updates mutable profile fields for the authenticated user.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	type request struct {
		FirstName         *string `json:"first_name"`
		LastName          *string `json:"last_name"`
		PreferredLanguage *string `json:"preferred_language"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	userID := ctx.GetUint("user_id")
	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = utils.Sanitize(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = utils.Sanitize(*req.LastName)
	}
	if req.PreferredLanguage != nil && *req.PreferredLanguage != "" {
		updates["preferred_language"] = *req.PreferredLanguage
	}
	if len(updates) == 0 {
		utils.Success(ctx, sanitizeUserResponse(user))
		return
	}

	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to update profile")
		return
	}

	utils.Success(ctx, sanitizeUserResponse(user))
}
