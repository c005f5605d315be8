package stockservice

import (
	"context"
	"fmt"
	"strings"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// ProductRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
// O estoque vive dentro do produto, por tamanho.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, bool, error)
	Modify(ctx context.Context, id string, fn func(p *domain.Product) error) (domain.Product, error)
}

// Service controla o estoque por (produto, tamanho).
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AdjustStock aplica um ajuste ao estoque de um tamanho de um produto.
// O ajuste que deixaria o estoque negativo é rejeitado sem gravar nada.
func (s *Service) AdjustStock(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.Product, error) {
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", map[string]interface{}{
		"product_id": adjustment.ProductID,
		"size":       adjustment.Size,
		"delta":      adjustment.Delta,
	})

	if adjustment.Delta == 0 {
		return domain.Product{}, apperror.NewValidationError("O ajuste de estoque (delta) não pode ser zero.")
	}
	if !adjustment.Size.Valid() {
		return domain.Product{}, apperror.NewValidationError(fmt.Sprintf("Tamanho '%s' é inválido.", adjustment.Size))
	}

	product, err := s.repo.Modify(ctx, adjustment.ProductID, func(p *domain.Product) error {
		for i := range p.Sizes {
			if p.Sizes[i].Size != adjustment.Size {
				continue
			}
			next := p.Sizes[i].Stock + adjustment.Delta
			if next < 0 {
				return apperror.NewValidationError(fmt.Sprintf("Estoque insuficiente: %d disponível no tamanho %s.", p.Sizes[i].Stock, adjustment.Size))
			}
			p.Sizes[i].Stock = next
			return nil
		}
		if adjustment.Delta < 0 {
			return apperror.NewValidationError(fmt.Sprintf("O produto não possui o tamanho %s.", adjustment.Size))
		}
		p.Sizes = append(p.Sizes, domain.ProductSize{Size: adjustment.Size, Stock: adjustment.Delta})
		return nil
	})
	if err != nil {
		s.logger.Error("Falha ao ajustar estoque no repositório.", err)
		return domain.Product{}, apperror.Wrap("Falha interna ao ajustar estoque.", err)
	}

	stock, _ := product.StockFor(adjustment.Size)
	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"product_id":   product.ID,
		"size":         adjustment.Size,
		"new_quantity": stock,
	})
	return product, nil
}

// GetStockSummary devolve o estoque total e por tamanho de cada produto.
func (s *Service) GetStockSummary(ctx context.Context) ([]domain.StockSummary, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar produtos para o relatório de estoque.", err)
		return nil, apperror.Wrap("Falha interna ao consultar estoque.", err)
	}
	out := make([]domain.StockSummary, 0, len(products))
	for _, p := range products {
		out = append(out, domain.StockSummary{ProductID: p.ID, Name: p.Name, Total: p.TotalStock(), Sizes: p.Sizes})
	}
	return out, nil
}

// CheckAvailability confere se cada linha do carrinho cabe no estoque atual.
// Linhas do mesmo (produto, tamanho) são somadas. Nada é reservado.
func (s *Service) CheckAvailability(ctx context.Context, items []domain.CartItem) error {
	type key struct {
		productID string
		size      domain.Size
	}
	wanted := make(map[key]int, len(items))
	order := make([]key, 0, len(items))
	for _, item := range items {
		k := key{item.ProductID, item.Size}
		if _, seen := wanted[k]; !seen {
			order = append(order, k)
		}
		wanted[k] += item.Quantity
	}

	var missing []string
	for _, k := range order {
		product, ok, err := s.repo.FindByID(ctx, k.productID)
		if err != nil {
			s.logger.Error("Falha ao consultar produto na verificação de estoque.", err)
			return apperror.Wrap("Falha interna ao verificar estoque.", err)
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("produto %s indisponível", k.productID))
			continue
		}
		stock, _ := product.StockFor(k.size)
		if stock < wanted[k] {
			missing = append(missing, fmt.Sprintf("%s (%s): %d disponível", product.Name, k.size, stock))
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("Estoque insuficiente para o carrinho.", map[string]interface{}{"items": missing})
		return apperror.NewConflictError("Estoque insuficiente: " + strings.Join(missing, "; "))
	}
	return nil
}
