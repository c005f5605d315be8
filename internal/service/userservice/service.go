package userservice

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// UserRepository é o contrato da persistência de usuários. Leituras nunca trazem a senha.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, bool, error)
	FindByEmail(ctx context.Context, email string) (domain.User, bool, error)
	Save(ctx context.Context, user domain.User) (domain.User, error)
}

const minPasswordLength = 6

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, logger logger.Logger) *UserService {
	return &UserService{UserRepo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

// WithHashCost ajusta o custo do bcrypt (testes usam bcrypt.MinCost).
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register registra um novo cliente no sistema.
// Ele faz o hashing da senha e rejeita e-mails já cadastrados.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	name := strings.TrimSpace(registration.Name)
	email := strings.TrimSpace(registration.Email)
	if name == "" || email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("O email '%s' é inválido.", email))
	}
	if len(registration.Password) < minPasswordLength {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter ao menos %d caracteres.", minPasswordLength))
	}

	// 2. Unicidade do e-mail (o Save confere de novo na mesma escrita)
	if _, exists, err := s.UserRepo.FindByEmail(ctx, email); err != nil {
		s.logger.Error("Falha ao verificar e-mail no repositório.", err)
		return domain.User{}, apperror.Wrap("Falha interna ao registrar usuário.", err)
	} else if exists {
		return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", email))
	}

	// 3. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), s.cost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Persistência
	user, err := s.UserRepo.Save(ctx, domain.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     domain.RoleCustomer,
	})
	if apperror.IsConflict(err) {
		return domain.User{}, err
	}
	if err != nil {
		s.logger.Error("Falha ao salvar usuário no repositório.", err)
		return domain.User{}, apperror.Wrap("Falha interna ao registrar usuário.", err)
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"id": user.ID})
	return user, nil
}

// GetUsers devolve todos os usuários, sem senha.
func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar usuários no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar usuários.", err)
	}
	return users, nil
}

// GetCustomers devolve apenas os usuários com papel customer.
func (s *UserService) GetCustomers(ctx context.Context) ([]domain.User, error) {
	users, err := s.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	customers := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleCustomer {
			customers = append(customers, u)
		}
	}
	return customers, nil
}

// GetUserByID busca um usuário pelo ID, sem senha.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, ok, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário no repositório.", err)
		return domain.User{}, apperror.Wrap("Falha interna ao buscar usuário.", err)
	}
	if !ok {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não foi encontrado.", id))
	}
	return user, nil
}
