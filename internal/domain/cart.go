package domain

import "github.com/shopspring/decimal"

// CartItem é uma linha do carrinho. A chave de unicidade é (ProductID, Size).
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity"`
}

// LineTotal é preço × quantidade.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameKey informa se o item corresponde ao par (produto, tamanho).
func (i CartItem) SameKey(productID string, size Size) bool {
	return i.ProductID == productID && i.Size == size
}

// CartQuantityUpdate é o payload de alteração de quantidade de uma linha.
type CartQuantityUpdate struct {
	Quantity int `json:"quantity"`
}

// CartView é o carrinho com os valores derivados.
type CartView struct {
	Items []CartItem      `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// SessionView resume a sessão: usuário (se logado) e carrinho.
type SessionView struct {
	User *User    `json:"user"`
	Cart CartView `json:"cart"`
}

// CartAddRequest é o payload de inclusão no carrinho. Nome, preço e imagem
// vêm do catálogo, não do cliente.
type CartAddRequest struct {
	ProductID string `json:"productId"`
	Size      Size   `json:"size"`
	Quantity  int    `json:"quantity"`
}
