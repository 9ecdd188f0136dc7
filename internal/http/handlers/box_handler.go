package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// BoxHandler handles HTTP requests for reward boxes
type BoxHandler struct {
	boxUseCase domain.BoxUseCase
	logger     *logger.Logger
}

// NewBoxHandler creates a new box handler
func NewBoxHandler(boxUseCase domain.BoxUseCase, logger *logger.Logger) *BoxHandler {
	return &BoxHandler{
		boxUseCase: boxUseCase,
		logger:     logger,
	}
}

// OpenBoxRequest represents the box open request body
type OpenBoxRequest struct {
	BoxKind string `json:"box_kind" binding:"required" example:"free_box"`
}

// Open handles box opens
// @Summary Open a reward box
// @Description Pay the box price and roll the reward
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenBoxRequest true "Box kind"
// @Success 200 {object} domain.BoxOpenResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /boxes/open [post]
func (h *BoxHandler) Open(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	var req OpenBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", 400, err))
		return
	}

	result, err := h.boxUseCase.OpenBox(userID, req.BoxKind, time.Now())
	if err != nil {
		h.logger.Error("Box open failed",
			zap.Int64("user_id", userID),
			zap.String("box_kind", req.BoxKind),
			zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
