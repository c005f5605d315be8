package productrepo_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/productrepo"
)

func newRepo() *productrepo.ProductRepository {
	return productrepo.NewProductRepository(kvstore.NewMemoryStore(), "ctrlshirt_", 0, logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
}

func TestProductRepository_SeedsCatalog(t *testing.T) {
	products, err := newRepo().List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 10)
	for _, p := range products {
		assert.Len(t, p.Sizes, 5)
		assert.NotEmpty(t, p.Images)
	}
}

func TestProductRepository_SaveThenFind(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()
	p := domain.Product{ID: "abc", Name: "Null Pointer", Price: decimal.RequireFromString("69.90"), Images: []string{"img"}}

	saved, err := repo.SaveWithUniqueSlug(ctx, p, "null-pointer")
	require.NoError(t, err)
	assert.Equal(t, "null-pointer", saved.Slug)

	got, ok, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Null Pointer", got.Name)
	assert.True(t, p.Price.Equal(got.Price))

	bySlug, ok, err := repo.FindBySlug(ctx, "null-pointer")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", bySlug.ID)
}

func TestProductRepository_DeleteThenFindIsAbsent(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "1"))
	require.NoError(t, repo.Delete(ctx, "1"))

	_, ok, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepository_Modify(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	updated, err := repo.Modify(ctx, "1", func(p *domain.Product) error {
		p.Tags = append(p.Tags, "promo")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.HasTag("promo"))

	_, err = repo.Modify(ctx, "999", func(p *domain.Product) error { return nil })
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductRepository_SaveWithUniqueSlug_ConcurrentCreates(t *testing.T) {
	repo := productrepo.NewProductRepository(kvstore.NewMemoryStore(), "ctrlshirt_", kvstore.Latency(5*time.Millisecond), logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
	ctx := context.Background()

	const workers = 8
	slugs := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := repo.SaveWithUniqueSlug(ctx, domain.Product{ID: fmt.Sprintf("novo-%d", i), Name: "Same Name"}, "same-name")
			assert.NoError(t, err)
			slugs[i] = p.Slug
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []string{"same-name", "same-name-2", "same-name-3", "same-name-4",
		"same-name-5", "same-name-6", "same-name-7", "same-name-8"}, slugs)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	stored := map[string]bool{}
	for _, p := range products {
		assert.False(t, stored[p.Slug], "slug repetido: %s", p.Slug)
		stored[p.Slug] = true
	}
}

func TestProductRepository_UpdateWithUniqueSlug(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	current, err := repo.Modify(ctx, "1", func(p *domain.Product) error {
		p.Reviews = append(p.Reviews, domain.Review{ID: "r-teste", Author: "Ana", Rating: 5})
		return nil
	})
	require.NoError(t, err)
	other, ok, err := repo.FindByID(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)

	// Slug vazio com base igual ao de outro produto recebe sufixo.
	update := current
	update.Slug = ""
	update.Reviews = nil
	updated, err := repo.UpdateWithUniqueSlug(ctx, update, other.Slug)
	require.NoError(t, err)
	assert.Equal(t, other.Slug+"-2", updated.Slug)
	require.Len(t, updated.Reviews, len(current.Reviews))
	assert.Equal(t, "r-teste", updated.Reviews[len(updated.Reviews)-1].ID)

	// Base igual ao próprio slug não conta como colisão.
	update = updated
	update.Slug = ""
	again, err := repo.UpdateWithUniqueSlug(ctx, update, updated.Slug)
	require.NoError(t, err)
	assert.Equal(t, updated.Slug, again.Slug)

	_, err = repo.UpdateWithUniqueSlug(ctx, domain.Product{ID: "nao-existe"}, "x")
	assert.True(t, apperror.IsNotFound(err))
}
