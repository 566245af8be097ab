package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/washpoint/washpoint/internal/server/http/dto"
)

// RewardHandler exposes reward ledger queries.
type RewardHandler struct {
	facade RewardFacade
}

// NewRewardHandler constructs RewardHandler.
func NewRewardHandler(facade RewardFacade) *RewardHandler {
	return &RewardHandler{facade: facade}
}

// Status handles GET /api/rewards/status.
func (h *RewardHandler) Status(c *gin.Context) {
	status, err := h.facade.RewardStatus(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.FromRewardStatus(status))
}

// History handles GET /api/rewards/history.
func (h *RewardHandler) History(c *gin.Context) {
	history, err := h.facade.RewardHistory(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.FromRewardHistory(history))
}

// Eligibility handles GET /api/rewards/eligibility.
func (h *RewardHandler) Eligibility(c *gin.Context) {
	result, err := h.facade.RewardEligibility(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.EligibilityResponse{
		IsEligible:           result.IsEligible,
		DiscountAmount:       result.DiscountAmount,
		OrdersInCurrentCycle: result.OrdersInCurrentCycle,
		Message:              result.Message,
	})
}
