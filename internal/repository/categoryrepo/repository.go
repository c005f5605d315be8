package categoryrepo

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

// CategoryRepository guarda as categorias na chave "<prefixo>categories".
type CategoryRepository struct {
	categories *kvstore.Collection[domain.Category]
	logger     logger.Logger
}

// NewCategoryRepository cria o repositório de categorias.
func NewCategoryRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		categories: kvstore.NewCollection(store, kvstore.CollectionOptions[domain.Category]{
			Key:     kvstore.Key(keyPrefix, kvstore.KeyCategories),
			IDOf:    func(c domain.Category) string { return c.ID },
			Seed:    seed.Categories,
			Latency: latency,
			Logger:  logger,
		}),
		logger: logger,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.categories.List(ctx)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, bool, error) {
	return r.categories.Find(ctx, id)
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, bool, error) {
	return r.categories.FindFirst(ctx, func(c domain.Category) bool { return c.Slug == slug })
}

// SaveWithUniqueSlug atribui o primeiro slug livre derivado de base e grava
// a categoria na mesma escrita.
func (r *CategoryRepository) SaveWithUniqueSlug(ctx context.Context, category domain.Category, base string) (domain.Category, error) {
	saved, err := r.categories.Insert(ctx, category, func(existing []domain.Category, c *domain.Category) error {
		c.Slug = slug.Unique(base, slugsOf(existing))
		return nil
	})
	if err != nil {
		r.logger.Error("Falha ao salvar categoria.", err)
		return domain.Category{}, err
	}
	r.logger.Info("Categoria salva.", map[string]interface{}{"id": saved.ID, "slug": saved.Slug})
	return saved, nil
}

// UpdateWithUniqueSlug substitui a categoria de mesmo id com o primeiro slug
// livre derivado de base, ignorando o slug atual dela.
func (r *CategoryRepository) UpdateWithUniqueSlug(ctx context.Context, category domain.Category, base string) (domain.Category, error) {
	updated, found, err := r.categories.ReplaceWith(ctx, category, func(_ domain.Category, others []domain.Category, c *domain.Category) error {
		c.Slug = slug.Unique(base, slugsOf(others))
		return nil
	})
	if err != nil {
		r.logger.Error("Falha ao atualizar categoria.", err)
		return domain.Category{}, err
	}
	if !found {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não existe.", category.ID))
	}
	return updated, nil
}

// Delete remove a categoria sem tocar nos produtos que a referenciam.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.categories.Remove(ctx, id)
}

func slugsOf(categories []domain.Category) func(string) bool {
	taken := make(map[string]bool, len(categories))
	for _, c := range categories {
		taken[c.Slug] = true
	}
	return func(s string) bool { return taken[s] }
}
