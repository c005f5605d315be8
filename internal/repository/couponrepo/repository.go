package couponrepo

import (
	"context"
	"fmt"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/seed"
)

// CouponRepository guarda os cupons na chave "<prefixo>coupons".
type CouponRepository struct {
	coupons *kvstore.Collection[domain.Coupon]
	logger  logger.Logger
}

// NewCouponRepository cria o repositório de cupons.
func NewCouponRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *CouponRepository {
	return &CouponRepository{
		coupons: kvstore.NewCollection(store, kvstore.CollectionOptions[domain.Coupon]{
			Key:     kvstore.Key(keyPrefix, kvstore.KeyCoupons),
			IDOf:    func(c domain.Coupon) string { return c.ID },
			Seed:    seed.Coupons,
			Latency: latency,
			Logger:  logger,
		}),
		logger: logger,
	}
}

func (r *CouponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	return r.coupons.List(ctx)
}

func (r *CouponRepository) FindByID(ctx context.Context, id string) (domain.Coupon, bool, error) {
	return r.coupons.Find(ctx, id)
}

// FindActiveByCode busca um cupom ativo pelo código, sem diferenciar caixa.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string) (domain.Coupon, bool, error) {
	return r.coupons.FindFirst(ctx, func(c domain.Coupon) bool { return c.IsActive && c.Matches(code) })
}

// Save insere o cupom. O código é conferido contra os demais na mesma
// escrita; código já usado, sem diferenciar caixa, devolve ConflictError.
func (r *CouponRepository) Save(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	saved, err := r.coupons.Insert(ctx, coupon, func(existing []domain.Coupon, c *domain.Coupon) error {
		return codeFree(existing, c.Code)
	})
	if err != nil {
		if !apperror.IsConflict(err) {
			r.logger.Error("Falha ao salvar cupom.", err)
		}
		return domain.Coupon{}, err
	}
	return saved, nil
}

// Update substitui o cupom de mesmo id com a mesma regra de código único.
func (r *CouponRepository) Update(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	updated, found, err := r.coupons.ReplaceWith(ctx, coupon, func(_ domain.Coupon, others []domain.Coupon, c *domain.Coupon) error {
		return codeFree(others, c.Code)
	})
	if err != nil {
		if !apperror.IsConflict(err) {
			r.logger.Error("Falha ao atualizar cupom.", err)
		}
		return domain.Coupon{}, err
	}
	if !found {
		return domain.Coupon{}, apperror.NewNotFoundError(fmt.Sprintf("Cupom com ID %s não existe.", coupon.ID))
	}
	return updated, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	return r.coupons.Remove(ctx, id)
}

func codeFree(coupons []domain.Coupon, code string) error {
	for _, c := range coupons {
		if c.Matches(code) {
			return apperror.NewConflictError(fmt.Sprintf("O código '%s' já está em uso.", code))
		}
	}
	return nil
}
