package domain

// Category agrupa produtos do catálogo. Não há integridade referencial:
// excluir uma categoria não altera os produtos que apontam para ela.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryCreateRequest é o payload de criação de categoria.
type CategoryCreateRequest struct {
	Name string `json:"name"`
}

// ToCategory monta o registro a partir do payload e dos campos atribuídos.
func (r CategoryCreateRequest) ToCategory(id, slug string) Category {
	return Category{ID: id, Name: r.Name, Slug: slug}
}
