package productservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/slug"
)

// ProductRepository define o contrato que este Serviço espera
// da camada de Persistência.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, bool, error)
	FindBySlug(ctx context.Context, slug string) (domain.Product, bool, error)
	SaveWithUniqueSlug(ctx context.Context, product domain.Product, base string) (domain.Product, error)
	UpdateWithUniqueSlug(ctx context.Context, product domain.Product, base string) (domain.Product, error)
	Modify(ctx context.Context, id string, fn func(p *domain.Product) error) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras do catálogo.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// --- Implementação: CreateProduct ---
func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": req.Name})

	product := req.ToProduct(uuid.New().String(), "")
	if err := validateProduct(&product); err != nil {
		s.logger.Warn("Falha na validação do produto.", map[string]interface{}{"name": req.Name, "error": err.Error()})
		return domain.Product{}, err
	}

	// O slug livre é escolhido na mesma escrita que grava o produto.
	created, err := s.repo.SaveWithUniqueSlug(ctx, product, slug.Make(product.Name))
	if err != nil {
		s.logger.Error("Falha ao salvar produto no repositório.", err)
		return domain.Product{}, apperror.Wrap("Falha interna ao criar produto.", err)
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "slug": created.Slug})
	return created, nil
}

// GetProducts devolve o catálogo aplicando os filtros da vitrine.
// Filtro vazio devolve todos os produtos, na ordem armazenada.
func (s *Service) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.Size != "" && !filter.Size.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("Tamanho '%s' é inválido.", filter.Size))
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar produtos.", err)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Tag != "" && !p.HasTag(filter.Tag) {
			continue
		}
		if filter.Size != "" {
			if stock, ok := p.StockFor(filter.Size); !ok || stock <= 0 {
				continue
			}
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	product, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar produto no repositório.", err)
		return domain.Product{}, apperror.Wrap("Falha interna ao buscar produto.", err)
	}
	if !ok {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não foi encontrado.", id))
	}
	return product, nil
}

// GetProductBySlug busca um produto pelo slug usado nas URLs da loja.
func (s *Service) GetProductBySlug(ctx context.Context, productSlug string) (domain.Product, error) {
	product, ok, err := s.repo.FindBySlug(ctx, productSlug)
	if err != nil {
		s.logger.Error("Falha ao buscar produto por slug no repositório.", err)
		return domain.Product{}, apperror.Wrap("Falha interna ao buscar produto.", err)
	}
	if !ok {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto '%s' não foi encontrado.", productSlug))
	}
	return product, nil
}

// UpdateProduct substitui o produto inteiro. O slug é mantido como enviado;
// se vier vazio é derivado novamente do nome. Avaliações ausentes no payload
// são preservadas.
func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": product.ID})

	if err := validateProduct(&product); err != nil {
		return domain.Product{}, err
	}

	product.Slug = strings.TrimSpace(product.Slug)
	updated, err := s.repo.UpdateWithUniqueSlug(ctx, product, slug.Make(product.Name))
	if apperror.IsNotFound(err) {
		return domain.Product{}, err
	}
	if err != nil {
		s.logger.Error("Falha ao atualizar produto no repositório.", err)
		return domain.Product{}, apperror.Wrap("Falha interna ao atualizar produto.", err)
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteProduct remove o produto. Remover um id inexistente não é erro.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao remover produto no repositório.", err)
		return apperror.Wrap("Falha interna ao remover produto.", err)
	}
	s.logger.Info("Produto removido.", map[string]interface{}{"id": id})
	return nil
}

// AddReview acrescenta uma avaliação ao produto.
func (s *Service) AddReview(ctx context.Context, productID string, req domain.ReviewRequest) (domain.Review, error) {
	author := strings.TrimSpace(req.Author)
	if author == "" {
		return domain.Review{}, apperror.NewValidationError("O autor da avaliação é obrigatório.")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Review{}, apperror.NewValidationError("A nota deve estar entre 1 e 5.")
	}

	review := domain.Review{
		ID:      uuid.New().String(),
		Author:  author,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
		Date:    s.now().UTC(),
	}
	_, err := s.repo.Modify(ctx, productID, func(p *domain.Product) error {
		p.Reviews = append(p.Reviews, review)
		return nil
	})
	if err != nil {
		s.logger.Error("Falha ao registrar avaliação.", err)
		return domain.Review{}, apperror.Wrap("Falha interna ao registrar avaliação.", err)
	}

	s.logger.Info("Avaliação registrada.", map[string]interface{}{"product_id": productID, "rating": review.Rating})
	return review, nil
}

// validateProduct aplica as regras de negócio e normaliza os tamanhos
// para a ordem fixa da loja, completando os ausentes com estoque zero.
func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidationError("O preço do produto não pode ser negativo.")
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return apperror.NewValidationError("A categoria do produto é obrigatória.")
	}
	if len(p.Images) == 0 {
		return apperror.NewValidationError("O produto precisa de ao menos uma imagem.")
	}

	stock := make(map[domain.Size]int, len(p.Sizes))
	for _, ps := range p.Sizes {
		if !ps.Size.Valid() {
			return apperror.NewValidationError(fmt.Sprintf("Tamanho '%s' é inválido.", ps.Size))
		}
		if ps.Stock < 0 {
			return apperror.NewValidationError(fmt.Sprintf("O estoque do tamanho %s não pode ser negativo.", ps.Size))
		}
		if _, dup := stock[ps.Size]; dup {
			return apperror.NewValidationError(fmt.Sprintf("Tamanho %s informado mais de uma vez.", ps.Size))
		}
		stock[ps.Size] = ps.Stock
	}
	sizes := make([]domain.ProductSize, 0, len(domain.AllSizes))
	for _, size := range domain.AllSizes {
		sizes = append(sizes, domain.ProductSize{Size: size, Stock: stock[size]})
	}
	p.Sizes = sizes

	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}
