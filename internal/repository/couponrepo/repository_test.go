package couponrepo_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/couponrepo"
)

func newRepo(latency kvstore.Latency) *couponrepo.CouponRepository {
	return couponrepo.NewCouponRepository(kvstore.NewMemoryStore(), "ctrlshirt_", latency, logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
}

func TestCouponRepository_FindActiveByCode(t *testing.T) {
	repo := newRepo(0)
	ctx := context.Background()

	c, ok, err := repo.FindActiveByCode(ctx, "geek10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "GEEK10", c.Code)

	_, ok, err = repo.FindActiveByCode(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCouponRepository_SaveRejectsUsedCode(t *testing.T) {
	repo := newRepo(0)
	ctx := context.Background()

	// EXPIRED está inativo, mas o código continua ocupado.
	_, err := repo.Save(ctx, domain.Coupon{ID: "9", Code: "expired", DiscountPercentage: 5})
	assert.True(t, apperror.IsConflict(err))

	saved, err := repo.Save(ctx, domain.Coupon{ID: "9", Code: "NERD15", DiscountPercentage: 15, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "NERD15", saved.Code)
}

func TestCouponRepository_ConcurrentSavesKeepCodeUnique(t *testing.T) {
	repo := newRepo(kvstore.Latency(5 * time.Millisecond))
	ctx := context.Background()

	const workers = 8
	var created, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Save(ctx, domain.Coupon{ID: fmt.Sprintf("n-%d", i), Code: "NERD15", DiscountPercentage: 15})
			switch {
			case err == nil:
				atomic.AddInt32(&created, 1)
			case apperror.IsConflict(err):
				atomic.AddInt32(&conflicts, 1)
			default:
				t.Errorf("erro inesperado: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
	assert.Equal(t, int32(workers-1), conflicts)
}

func TestCouponRepository_Update(t *testing.T) {
	repo := newRepo(0)
	ctx := context.Background()

	// manter o próprio código é permitido
	updated, err := repo.Update(ctx, domain.Coupon{ID: "1", Code: "GEEK10", DiscountPercentage: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.DiscountPercentage)

	_, err = repo.Update(ctx, domain.Coupon{ID: "1", Code: "ctrl20", DiscountPercentage: 12})
	assert.True(t, apperror.IsConflict(err))

	_, err = repo.Update(ctx, domain.Coupon{ID: "404", Code: "NOVO"})
	assert.True(t, apperror.IsNotFound(err))
}
