package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AdminHandler handles HTTP requests for privileged operations
type AdminHandler struct {
	adminUseCase domain.AdminUseCase
	logger       *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUseCase domain.AdminUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// AdjustRequest represents the balance adjustment request body
type AdjustRequest struct {
	TargetID int64  `json:"target_id" binding:"required" example:"34679664254"`
	Currency string `json:"currency" binding:"required" example:"coin"`
	Delta    int64  `json:"delta" binding:"required" example:"-500"`
}

// SetLevelRequest represents the level set request body
type SetLevelRequest struct {
	TargetID int64 `json:"target_id" binding:"required" example:"34679664254"`
	Level    int   `json:"level" binding:"required,gte=1" example:"5"`
}

// GiftRequest represents the broadcast gift request body
type GiftRequest struct {
	Currency string `json:"currency" binding:"required" example:"gem"`
	Amount   int64  `json:"amount" binding:"required,gt=0" example:"5"`
}

// Adjust handles signed balance adjustments
// @Summary Adjust a user's balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdjustRequest true "Adjustment details"
// @Success 200 {object} domain.AdjustResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/adjust [post]
func (h *AdminHandler) Adjust(c *gin.Context) {
	adminID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	result, err := h.adminUseCase.Adjust(adminID, req.TargetID, domain.Currency(req.Currency), req.Delta)
	if err != nil {
		h.logger.Error("Adjustment failed",
			zap.Int64("admin_id", adminID),
			zap.Int64("target_id", req.TargetID),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetLevel handles pinning a user's level
// @Summary Set a user's level
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetLevelRequest true "Level details"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/level [post]
func (h *AdminHandler) SetLevel(c *gin.Context) {
	adminID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req SetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	user, err := h.adminUseCase.SetLevel(adminID, req.TargetID, req.Level)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Gift handles broadcast gifts
// @Summary Gift every user a currency amount
// @Description Best-effort batch; per-user failures are reported, not fatal
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GiftRequest true "Gift details"
// @Success 200 {object} domain.GiftReport
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/gift [post]
func (h *AdminHandler) Gift(c *gin.Context) {
	adminID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	report, err := h.adminUseCase.BroadcastGift(adminID, domain.Currency(req.Currency), req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Stats handles the global stats read
// @Summary Global game statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.GlobalStats
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	adminID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	stats, err := h.adminUseCase.Stats(adminID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
