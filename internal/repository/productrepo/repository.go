package productrepo

import (
	"context"
	"fmt"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/slug"
	"ctrlshirt/internal/repository/seed"
)

// ProductRepository guarda o catálogo na chave "<prefixo>products".
type ProductRepository struct {
	products *kvstore.Collection[domain.Product]
	logger   logger.Logger
}

// NewProductRepository cria o repositório sobre o armazenamento chave-valor.
func NewProductRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		products: kvstore.NewCollection(store, kvstore.CollectionOptions[domain.Product]{
			Key:     kvstore.Key(keyPrefix, kvstore.KeyProducts),
			IDOf:    func(p domain.Product) string { return p.ID },
			Seed:    seed.Products,
			Latency: latency,
			Logger:  logger,
		}),
		logger: logger,
	}
}

// List devolve o catálogo inteiro.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.List(ctx)
}

// FindByID busca um produto pelo id; ok é false se não existir.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	return r.products.Find(ctx, id)
}

// FindBySlug busca um produto pelo slug; ok é false se não existir.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, bool, error) {
	return r.products.FindFirst(ctx, func(p domain.Product) bool { return p.Slug == slug })
}

// SaveWithUniqueSlug atribui o primeiro slug livre derivado de base e
// acrescenta o produto na mesma escrita, então criações concorrentes com o
// mesmo nome nunca compartilham slug.
func (r *ProductRepository) SaveWithUniqueSlug(ctx context.Context, product domain.Product, base string) (domain.Product, error) {
	saved, err := r.products.Insert(ctx, product, func(existing []domain.Product, p *domain.Product) error {
		p.Slug = slug.Unique(base, slugsOf(existing))
		return nil
	})
	if err != nil {
		r.logger.Error("Falha ao salvar produto.", err)
		return domain.Product{}, err
	}
	r.logger.Debug("Produto salvo no repositório.", map[string]interface{}{"id": saved.ID, "slug": saved.Slug})
	return saved, nil
}

// UpdateWithUniqueSlug substitui o produto de mesmo id. Slug vazio vira o
// primeiro slug livre derivado de base; Reviews nil mantém as avaliações
// gravadas. Devolve NotFoundError se o id não existe.
func (r *ProductRepository) UpdateWithUniqueSlug(ctx context.Context, product domain.Product, base string) (domain.Product, error) {
	updated, found, err := r.products.ReplaceWith(ctx, product, func(stored domain.Product, others []domain.Product, p *domain.Product) error {
		if p.Reviews == nil {
			p.Reviews = stored.Reviews
		}
		if p.Slug == "" {
			p.Slug = slug.Unique(base, slugsOf(others))
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Falha ao atualizar produto.", err)
		return domain.Product{}, err
	}
	if !found {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", product.ID))
	}
	return updated, nil
}

func slugsOf(products []domain.Product) func(string) bool {
	taken := make(map[string]bool, len(products))
	for _, p := range products {
		taken[p.Slug] = true
	}
	return func(s string) bool { return taken[s] }
}

// Delete remove o produto; id inexistente não é erro.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.products.Remove(ctx, id); err != nil {
		r.logger.Error("Falha ao remover produto.", err)
		return err
	}
	return nil
}

// Modify aplica fn ao produto de forma atômica neste processo (ajuste de
// estoque, nova avaliação). Devolve NotFoundError se o id não existe.
func (r *ProductRepository) Modify(ctx context.Context, id string, fn func(p *domain.Product) error) (domain.Product, error) {
	product, found, err := r.products.Modify(ctx, id, fn)
	if err != nil {
		return domain.Product{}, err
	}
	if !found {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
	}
	return product, nil
}
