package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// EconomyHandler handles HTTP requests for balances and the miner
type EconomyHandler struct {
	economyUseCase domain.EconomyUseCase
	logger         *logger.Logger
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(economyUseCase domain.EconomyUseCase, logger *logger.Logger) *EconomyHandler {
	return &EconomyHandler{
		economyUseCase: economyUseCase,
		logger:         logger,
	}
}

// BalanceChangeRequest represents a credit or debit request body
type BalanceChangeRequest struct {
	Currency string `json:"currency" binding:"required" example:"coin"`
	Amount   int64  `json:"amount" binding:"required,gt=0" example:"500"`
}

// Credit handles balance credits
// @Summary Credit a balance
// @Tags economy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BalanceChangeRequest true "Credit details"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Router /economy/credit [post]
func (h *EconomyHandler) Credit(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req BalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	user, err := h.economyUseCase.Credit(userID, domain.Currency(req.Currency), req.Amount)
	if err != nil {
		h.logger.Error("Credit failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Debit handles balance debits
// @Summary Debit a balance
// @Tags economy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BalanceChangeRequest true "Debit details"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Router /economy/debit [post]
func (h *EconomyHandler) Debit(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req BalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	user, err := h.economyUseCase.Debit(userID, domain.Currency(req.Currency), req.Amount)
	if err != nil {
		h.logger.Error("Debit failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ClaimMiner handles miner income claims
// @Summary Claim miner income
// @Tags economy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MinerClaimResult
// @Failure 400 {object} domain.ErrorResponse
// @Router /miner/claim [post]
func (h *EconomyHandler) ClaimMiner(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.economyUseCase.ClaimMiner(userID, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpgradeMiner handles miner upgrades
// @Summary Upgrade the miner
// @Tags economy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MinerUpgradeResult
// @Failure 400 {object} domain.ErrorResponse
// @Router /miner/upgrade [post]
func (h *EconomyHandler) UpgradeMiner(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.economyUseCase.UpgradeMiner(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
