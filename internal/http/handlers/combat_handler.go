package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CombatHandler handles HTTP requests for attacks
type CombatHandler struct {
	combatUseCase domain.CombatUseCase
	logger        *logger.Logger
}

// NewCombatHandler creates a new combat handler
func NewCombatHandler(combatUseCase domain.CombatUseCase, logger *logger.Logger) *CombatHandler {
	return &CombatHandler{
		combatUseCase: combatUseCase,
		logger:        logger,
	}
}

// AttackRequest represents the attack request body
type AttackRequest struct {
	TargetID int64  `json:"target_id" binding:"required" example:"34679664254"`
	Combo    string `json:"combo" binding:"required" example:"single strike"`
}

// Attack handles attack resolution
// @Summary Attack another user
// @Description Consume the combo's items and gems, deal damage and loot the target
// @Tags combat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AttackRequest true "Attack details"
// @Success 200 {object} domain.AttackResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /combat/attack [post]
func (h *CombatHandler) Attack(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	result, err := h.combatUseCase.Attack(userID, req.TargetID, req.Combo)
	if err != nil {
		h.logger.Error("Attack failed",
			zap.Int64("attacker_id", userID),
			zap.Int64("target_id", req.TargetID),
			zap.String("combo", req.Combo),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
