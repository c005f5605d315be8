package couponservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// CouponRepository define o contrato que o Serviço de Cupons espera da camada de Persistência.
type CouponRepository interface {
	List(ctx context.Context) ([]domain.Coupon, error)
	FindByID(ctx context.Context, id string) (domain.Coupon, bool, error)
	FindActiveByCode(ctx context.Context, code string) (domain.Coupon, bool, error)
	Save(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	Update(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de cupons.
type Service struct {
	repo   CouponRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Cupons.
func NewService(repo CouponRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ValidateCoupon devolve o cupom ativo com o código informado, sem diferenciar
// caixa. Código desconhecido ou inativo devolve nil sem erro.
func (s *Service) ValidateCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	coupon, ok, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		s.logger.Error("Falha ao validar cupom no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao validar cupom.", err)
	}
	if !ok {
		s.logger.Debug("Cupom inexistente ou inativo.", map[string]interface{}{"code": code})
		return nil, nil
	}
	return &coupon, nil
}

// GetCoupons devolve todos os cupons.
func (s *Service) GetCoupons(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar cupons no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar cupons.", err)
	}
	return coupons, nil
}

// GetCouponByID busca um cupom pelo ID.
func (s *Service) GetCouponByID(ctx context.Context, id string) (domain.Coupon, error) {
	coupon, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar cupom no repositório.", err)
		return domain.Coupon{}, apperror.Wrap("Falha interna ao buscar cupom.", err)
	}
	if !ok {
		return domain.Coupon{}, apperror.NewNotFoundError(fmt.Sprintf("Cupom com ID %s não foi encontrado.", id))
	}
	return coupon, nil
}

// CreateCoupon cria um cupom. Códigos são guardados em maiúsculas e não podem
// repetir; o repositório confere isso na mesma escrita e devolve Conflict.
func (s *Service) CreateCoupon(ctx context.Context, req domain.CouponCreateRequest) (domain.Coupon, error) {
	coupon := req.ToCoupon(uuid.New().String())
	if err := validateCoupon(&coupon); err != nil {
		return domain.Coupon{}, err
	}
	created, err := s.repo.Save(ctx, coupon)
	if apperror.IsConflict(err) {
		return domain.Coupon{}, err
	}
	if err != nil {
		s.logger.Error("Falha ao salvar cupom no repositório.", err)
		return domain.Coupon{}, apperror.Wrap("Falha interna ao criar cupom.", err)
	}
	s.logger.Info("Cupom criado.", map[string]interface{}{"id": created.ID, "code": created.Code})
	return created, nil
}

// UpdateCoupon substitui o cupom inteiro.
func (s *Service) UpdateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if err := validateCoupon(&coupon); err != nil {
		return domain.Coupon{}, err
	}
	updated, err := s.repo.Update(ctx, coupon)
	if apperror.IsConflict(err) || apperror.IsNotFound(err) {
		return domain.Coupon{}, err
	}
	if err != nil {
		s.logger.Error("Falha ao atualizar cupom no repositório.", err)
		return domain.Coupon{}, apperror.Wrap("Falha interna ao atualizar cupom.", err)
	}
	s.logger.Info("Cupom atualizado.", map[string]interface{}{"id": updated.ID, "active": updated.IsActive})
	return updated, nil
}

// DeleteCoupon remove um cupom; id inexistente não é erro.
func (s *Service) DeleteCoupon(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao remover cupom no repositório.", err)
		return apperror.Wrap("Falha interna ao remover cupom.", err)
	}
	s.logger.Info("Cupom removido.", map[string]interface{}{"id": id})
	return nil
}

func validateCoupon(c *domain.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.Code == "" {
		return apperror.NewValidationError("O código do cupom é obrigatório.")
	}
	if strings.ContainsAny(c.Code, " \t") {
		return apperror.NewValidationError("O código do cupom não pode conter espaços.")
	}
	if c.DiscountPercentage < 0 || c.DiscountPercentage > 100 {
		return apperror.NewValidationError("O desconto deve estar entre 0% e 100%.")
	}
	return nil
}
