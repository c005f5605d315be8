package dashboard

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

type Handler struct {
	Service DashboardService
	Logger  logger.Logger
}

func NewHandler(svc DashboardService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// GetDashboardStatsHandler lida com a requisição GET /v1/admin/dashboard.
// @Summary Indicadores do painel
// @Description Receita total, total de pedidos, clientes e pedidos dos últimos 7 dias.
// @Tags admin-dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardStats
// @Router /v1/admin/dashboard [get]
func (h *Handler) GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetDashboardStats(r.Context())
	httpx.Respond(w, r, h.Logger, stats, err, http.StatusOK)
}
