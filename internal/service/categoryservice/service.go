package categoryservice

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/slug"
)

// CategoryRepository define o contrato que o Serviço de Categorias espera da camada de Persistência.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (domain.Category, bool, error)
	FindBySlug(ctx context.Context, slug string) (domain.Category, bool, error)
	SaveWithUniqueSlug(ctx context.Context, category domain.Category, base string) (domain.Category, error)
	UpdateWithUniqueSlug(ctx context.Context, category domain.Category, base string) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de categorias.
type Service struct {
	repo   CategoryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Categorias.
func NewService(repo CategoryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCategory cria uma nova categoria com slug derivado do nome.
func (s *Service) CreateCategory(ctx context.Context, req domain.CategoryCreateRequest) (domain.Category, error) {
	s.logger.Debug("Iniciando criação de categoria no serviço.", map[string]interface{}{"name": req.Name})

	name := strings.TrimSpace(req.Name)
	if err := s.validateCategoryName(name); err != nil {
		s.logger.Warn("Falha na validação do nome da categoria.", map[string]interface{}{"name": req.Name, "error": err.Error()})
		return domain.Category{}, err
	}

	category := domain.CategoryCreateRequest{Name: name}.ToCategory(uuid.New().String(), "")
	created, err := s.repo.SaveWithUniqueSlug(ctx, category, slug.Make(name))
	if err != nil {
		s.logger.Error("Falha ao criar categoria no repositório.", err)
		return domain.Category{}, apperror.Wrap("Falha interna ao criar categoria.", err)
	}

	s.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": created.ID, "slug": created.Slug})
	return created, nil
}

// GetCategoryByID busca uma categoria pelo ID.
func (s *Service) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	category, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar categoria no repositório.", err)
		return domain.Category{}, apperror.Wrap("Falha interna ao buscar categoria.", err)
	}
	if !ok {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não foi encontrada.", id))
	}
	return category, nil
}

// GetCategoryBySlug busca uma categoria pelo slug.
func (s *Service) GetCategoryBySlug(ctx context.Context, categorySlug string) (domain.Category, error) {
	category, ok, err := s.repo.FindBySlug(ctx, categorySlug)
	if err != nil {
		s.logger.Error("Falha ao buscar categoria por slug no repositório.", err)
		return domain.Category{}, apperror.Wrap("Falha interna ao buscar categoria.", err)
	}
	if !ok {
		return domain.Category{}, apperror.NewNotFoundError(fmt.Sprintf("Categoria '%s' não foi encontrada.", categorySlug))
	}
	return category, nil
}

// GetAllCategories busca todas as categorias.
func (s *Service) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar todas as categorias no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar categorias.", err)
	}

	s.logger.Debug("Categorias encontradas.", map[string]interface{}{"count": len(categories)})
	return categories, nil
}

// UpdateCategory renomeia uma categoria; o slug é sempre derivado de novo do nome.
func (s *Service) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.logger.Debug("Iniciando atualização de categoria no serviço.", map[string]interface{}{"id": category.ID, "name": category.Name})

	category.Name = strings.TrimSpace(category.Name)
	if err := s.validateCategoryName(category.Name); err != nil {
		s.logger.Warn("Falha na validação do nome da categoria para atualização.", map[string]interface{}{"name": category.Name, "error": err.Error()})
		return domain.Category{}, err
	}

	updated, err := s.repo.UpdateWithUniqueSlug(ctx, category, slug.Make(category.Name))
	if apperror.IsNotFound(err) {
		return domain.Category{}, err
	}
	if err != nil {
		s.logger.Error("Falha ao atualizar categoria no repositório.", err)
		return domain.Category{}, apperror.Wrap("Falha interna ao atualizar categoria.", err)
	}

	s.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": updated.ID, "slug": updated.Slug})
	return updated, nil
}

// DeleteCategory remove uma categoria. Os produtos que apontam para ela não são alterados.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar categoria no repositório.", err)
		return apperror.Wrap("Falha interna ao deletar categoria.", err)
	}

	s.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateCategoryName é uma função auxiliar para validar o nome da categoria.
func (s *Service) validateCategoryName(name string) error {
	if name == "" {
		return apperror.NewValidationError("O nome da categoria não pode ser vazio.")
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return apperror.NewValidationError("O nome da categoria deve ter entre 2 e 100 caracteres.")
	}
	return nil
}
