package coupon

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

// CouponService define o contrato que o Handler espera da camada de Serviço.
type CouponService interface {
	ValidateCoupon(ctx context.Context, code string) (*domain.Coupon, error)
	GetCoupons(ctx context.Context) ([]domain.Coupon, error)
	GetCouponByID(ctx context.Context, id string) (domain.Coupon, error)
	CreateCoupon(ctx context.Context, req domain.CouponCreateRequest) (domain.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
}

type Handler struct {
	Service CouponService
	Logger  logger.Logger
}

func NewHandler(svc CouponService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ValidateCouponHandler lida com a requisição POST /v1/coupons/validate.
// @Summary Valida um cupom
// @Description Código inexistente ou inativo responde 404.
// @Tags coupons
// @Accept json
// @Produce json
// @Param code body domain.CouponValidationRequest true "Código do cupom"
// @Success 200 {object} domain.Coupon
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/coupons/validate [post]
func (h *Handler) ValidateCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponValidationRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	coupon, err := h.Service.ValidateCoupon(r.Context(), req.Code)
	if err == nil && coupon == nil {
		err = apperror.NewNotFoundError("Cupom inválido ou expirado.")
	}
	httpx.Respond(w, r, h.Logger, coupon, err, http.StatusOK)
}

// GetCouponsHandler lida com a requisição GET /v1/admin/coupons.
// @Summary Lista os cupons
// @Tags admin-coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Coupon
// @Router /v1/admin/coupons [get]
func (h *Handler) GetCouponsHandler(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Service.GetCoupons(r.Context())
	httpx.Respond(w, r, h.Logger, coupons, err, http.StatusOK)
}

// GetCouponByIDHandler lida com a requisição GET /v1/admin/coupons/{id}.
// @Summary Busca um cupom
// @Tags admin-coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cupom"
// @Success 200 {object} domain.Coupon
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/coupons/{id} [get]
func (h *Handler) GetCouponByIDHandler(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.Service.GetCouponByID(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, coupon, err, http.StatusOK)
}

// CreateCouponHandler lida com a requisição POST /v1/admin/coupons.
// @Summary Cria um cupom
// @Tags admin-coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param coupon body domain.CouponCreateRequest true "Dados do cupom"
// @Success 201 {object} domain.Coupon
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /v1/admin/coupons [post]
func (h *Handler) CreateCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponCreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	coupon, err := h.Service.CreateCoupon(r.Context(), req)
	httpx.Respond(w, r, h.Logger, coupon, err, http.StatusCreated)
}

// UpdateCouponHandler lida com a requisição PUT /v1/admin/coupons/{id}.
// @Summary Atualiza um cupom
// @Tags admin-coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cupom"
// @Param coupon body domain.CouponCreateRequest true "Dados do cupom"
// @Success 200 {object} domain.Coupon
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /v1/admin/coupons/{id} [put]
func (h *Handler) UpdateCouponHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponCreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	coupon := domain.Coupon{
		ID:                 r.PathValue("id"),
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           req.IsActive,
	}
	updated, err := h.Service.UpdateCoupon(r.Context(), coupon)
	httpx.Respond(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteCouponHandler lida com a requisição DELETE /v1/admin/coupons/{id}.
// @Summary Remove um cupom
// @Tags admin-coupons
// @Security BearerAuth
// @Param id path string true "ID do cupom"
// @Success 204
// @Router /v1/admin/coupons/{id} [delete]
func (h *Handler) DeleteCouponHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteCoupon(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, nil, err, http.StatusNoContent)
}
