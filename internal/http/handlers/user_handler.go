package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/auth"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user lifecycle operations
type UserHandler struct {
	userUseCase domain.UserUseCase
	jwtService  auth.JWTService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase domain.UserUseCase, jwtService auth.JWTService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	UserID   int64  `json:"user_id" binding:"required" example:"34633089486"`
	Username string `json:"username" binding:"required" example:"warlord1"`
	FullName string `json:"full_name" example:"First Warlord"`
}

// TokenRequest represents the token minting request body
type TokenRequest struct {
	UserID int64 `json:"user_id" binding:"required" example:"34633089486"`
}

// TokenResponse represents the token response body
type TokenResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *domain.User `json:"user"`
}

// Register handles first-contact registration from the gateway
// @Summary Register a user
// @Description Create the user with the starter package; idempotent for existing IDs
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	user, err := h.userUseCase.Register(req.UserID, req.Username, req.FullName)
	if err != nil {
		h.logger.Error("Registration failed", zap.Int64("user_id", req.UserID), zap.Error(err))
		writeError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		writeError(c, domain.NewInternalError("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, User: user})
}

// Token mints a JWT for an already registered user
// @Summary Mint a user token
// @Description Exchange the gateway key and a user ID for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token request"
// @Success 200 {object} TokenResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /auth/token [post]
func (h *UserHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	profile, err := h.userUseCase.GetProfile(req.UserID, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(profile.User.ID, profile.User.Username)
	if err != nil {
		writeError(c, domain.NewInternalError("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, User: profile.User})
}

// GetProfile handles the profile read for the authenticated user
// @Summary Get user profile
// @Description Balances, claimable miner income, inventory and defenses
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	profile, err := h.userUseCase.GetProfile(userID, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
