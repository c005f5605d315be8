package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size é o rótulo de tamanho de uma camiseta.
type Size string

const (
	SizeP  Size = "P"
	SizeM  Size = "M"
	SizeG  Size = "G"
	SizeGG Size = "GG"
	SizeXG Size = "XG"
)

// AllSizes lista os tamanhos na ordem exibida pela loja.
var AllSizes = []Size{SizeP, SizeM, SizeG, SizeGG, SizeXG}

// Valid informa se o rótulo pertence ao conjunto fixo de tamanhos.
func (s Size) Valid() bool {
	for _, known := range AllSizes {
		if s == known {
			return true
		}
	}
	return false
}

// ProductSize é o estoque de um tamanho de um produto.
type ProductSize struct {
	Size  Size `json:"size"`
	Stock int  `json:"stock"`
}

// Review é uma avaliação de cliente (nota de 1 a 5).
type Review struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// Product representa uma camiseta do catálogo.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	Sizes       []ProductSize   `json:"sizes"`
	Reviews     []Review        `json:"reviews"`
	Tags        []string        `json:"tags"`
}

// Available informa se ao menos um tamanho tem estoque.
func (p Product) Available() bool {
	for _, s := range p.Sizes {
		if s.Stock > 0 {
			return true
		}
	}
	return false
}

// StockFor devolve o estoque do tamanho e se o tamanho existe no produto.
func (p Product) StockFor(size Size) (int, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, true
		}
	}
	return 0, false
}

// HasTag informa se o produto possui a tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProductCreateRequest é o payload de criação, sem os campos atribuídos pelo serviço
// (id, slug e avaliações).
type ProductCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	Sizes       []ProductSize   `json:"sizes"`
	Tags        []string        `json:"tags"`
}

// ToProduct monta o registro a partir do payload e dos campos atribuídos.
func (r ProductCreateRequest) ToProduct(id, slug string) Product {
	return Product{
		ID:          id,
		Name:        r.Name,
		Slug:        slug,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		Sizes:       r.Sizes,
		Reviews:     []Review{},
		Tags:        r.Tags,
	}
}

// ProductFilter define os filtros da listagem pública do catálogo.
type ProductFilter struct {
	CategoryID string
	Size       Size // apenas produtos com estoque neste tamanho
	Tag        string
	Query      string // busca por nome, case-insensitive
}

// ReviewRequest é o payload de uma nova avaliação.
type ReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// StockAdjustmentRequest é o payload de ajuste de estoque de um tamanho.
type StockAdjustmentRequest struct {
	ProductID string `json:"productId"`
	Size      Size   `json:"size"`
	Delta     int    `json:"delta"`
}

// TotalStock soma o estoque de todos os tamanhos.
func (p Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// StockSummary é a linha do relatório de estoque do painel.
type StockSummary struct {
	ProductID string        `json:"productId"`
	Name      string        `json:"name"`
	Total     int           `json:"total"`
	Sizes     []ProductSize `json:"sizes"`
}
