package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/interfaces/http/middleware"
	"payzen.backend/internal/interfaces/http/response"
)

type DashboardService interface {
	GetStats(ctx context.Context, walletAddress string) (*entities.DashboardStats, error)
	GetBalance(ctx context.Context, walletAddress string) (*entities.BalanceResult, error)
	Health(ctx context.Context) *entities.ChainHealth
}

// DashboardHandler handles dashboard aggregation endpoints
type DashboardHandler struct {
	dashboardUsecase DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUsecase DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// Stats returns the caller's aggregated dashboard view
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	stats, err := h.dashboardUsecase.GetStats(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// Balance returns the caller's live token balance
// GET /api/v1/dashboard/balance
func (h *DashboardHandler) Balance(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	balance, err := h.dashboardUsecase.GetBalance(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, balance)
}

// Health reports RPC endpoint reachability
// GET /api/v1/dashboard/health
func (h *DashboardHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, h.dashboardUsecase.Health(c.Request.Context()))
}
