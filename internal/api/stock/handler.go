package stock

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	AdjustStock(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.Product, error)
	GetStockSummary(ctx context.Context) ([]domain.StockSummary, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// GetStockSummaryHandler lida com a requisição GET /v1/admin/stock.
// @Summary Relatório de estoque
// @Description Estoque total e por tamanho de cada produto.
// @Tags admin-stock
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.StockSummary
// @Router /v1/admin/stock [get]
func (h *Handler) GetStockSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.GetStockSummary(r.Context())
	httpx.Respond(w, r, h.Logger, summary, err, http.StatusOK)
}

// AdjustStockHandler lida com a requisição POST /v1/admin/stock/adjust.
// @Summary Ajusta o estoque de um tamanho
// @Description Delta positivo é entrada, negativo é saída. O estoque nunca fica negativo.
// @Tags admin-stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adjustment body domain.StockAdjustmentRequest true "Produto, tamanho e delta"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/stock/adjust [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var adjustment domain.StockAdjustmentRequest
	if err := httpx.Decode(r, &adjustment); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Ajuste de estoque solicitado.", map[string]interface{}{
			"user_id":    claims.UserID,
			"product_id": adjustment.ProductID,
			"size":       adjustment.Size,
			"delta":      adjustment.Delta,
		})
	}

	product, err := h.Service.AdjustStock(ctx, adjustment)
	httpx.Respond(w, r, h.Logger, product, err, http.StatusOK)
}
