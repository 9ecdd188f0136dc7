package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ShopHandler handles HTTP requests for purchases and defense upgrades
type ShopHandler struct {
	inventoryUseCase domain.InventoryUseCase
	logger           *logger.Logger
}

// NewShopHandler creates a new shop handler
func NewShopHandler(inventoryUseCase domain.InventoryUseCase, logger *logger.Logger) *ShopHandler {
	return &ShopHandler{
		inventoryUseCase: inventoryUseCase,
		logger:           logger,
	}
}

// PurchaseRequest represents the purchase request body
type PurchaseRequest struct {
	ItemName string `json:"item_name" binding:"required" example:"short-range missile"`
	Quantity int    `json:"quantity" binding:"required,gt=0" example:"3"`
}

// DefenseUpgradeRequest represents the defense upgrade request body
type DefenseUpgradeRequest struct {
	Name string `json:"name" binding:"required" example:"missile shield"`
}

// Purchase handles shop purchases
// @Summary Purchase an item
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "Purchase details"
// @Success 200 {object} domain.PurchaseResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /shop/purchase [post]
func (h *ShopHandler) Purchase(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	result, err := h.inventoryUseCase.Purchase(userID, req.ItemName, req.Quantity)
	if err != nil {
		h.logger.Error("Purchase failed",
			zap.Int64("user_id", userID),
			zap.String("item", req.ItemName),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpgradeDefense handles defense purchases and upgrades
// @Summary Buy or upgrade a defense structure
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DefenseUpgradeRequest true "Defense name"
// @Success 200 {object} domain.DefenseUpgradeResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /shop/defense [post]
func (h *ShopHandler) UpgradeDefense(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req DefenseUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	result, err := h.inventoryUseCase.UpgradeDefense(userID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
