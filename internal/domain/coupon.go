package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Coupon é um cupom de desconto percentual sobre o subtotal das mercadorias.
type Coupon struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discountPercentage"`
	IsActive           bool   `json:"isActive"`
}

// Matches compara o código sem diferenciar maiúsculas de minúsculas.
func (c Coupon) Matches(code string) bool {
	return strings.EqualFold(c.Code, code)
}

// DiscountOn calcula o valor do desconto sobre o subtotal, arredondado em centavos.
// O frete nunca entra nesta base.
func (c Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromInt(int64(c.DiscountPercentage))).Div(decimal.NewFromInt(100)).Round(2)
}

// CouponCreateRequest é o payload de criação de cupom.
type CouponCreateRequest struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discountPercentage"`
	IsActive           bool   `json:"isActive"`
}

// ToCoupon monta o registro a partir do payload e do id atribuído.
func (r CouponCreateRequest) ToCoupon(id string) Coupon {
	return Coupon{ID: id, Code: r.Code, DiscountPercentage: r.DiscountPercentage, IsActive: r.IsActive}
}

// CouponValidationRequest é o payload de validação de cupom na loja.
type CouponValidationRequest struct {
	Code string `json:"code"`
}
