package userrepo

import (
	"context"
	"fmt"
	"strings"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/seed"
)

// UserRepository guarda os usuários na chave "<prefixo>users".
// Nenhuma leitura devolve a senha armazenada.
type UserRepository struct {
	users  *kvstore.Collection[domain.User]
	logger logger.Logger
}

// NewUserRepository cria o repositório de usuários.
func NewUserRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *UserRepository {
	return &UserRepository{
		users: kvstore.NewCollection(store, kvstore.CollectionOptions[domain.User]{
			Key:     kvstore.Key(keyPrefix, kvstore.KeyUsers),
			IDOf:    func(u domain.User) string { return u.ID },
			Seed:    seed.Users,
			Latency: latency,
			Logger:  logger,
		}),
		logger: logger,
	}
}

// List devolve todos os usuários sem senha.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.WithoutPassword())
	}
	return out, nil
}

// FindByID busca um usuário sem senha; ok é false se não existir.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	u, ok, err := r.users.Find(ctx, id)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	return u.WithoutPassword(), true, nil
}

// FindByEmail busca um usuário pelo e-mail, sem diferenciar caixa.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	u, ok, err := r.users.FindFirst(ctx, func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	return u.WithoutPassword(), true, nil
}

// Save insere um novo usuário. Password já deve vir como hash. O e-mail é
// conferido na mesma escrita; e-mail já cadastrado, sem diferenciar caixa,
// devolve ConflictError.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Salvando usuário no repositório.", map[string]interface{}{"email": user.Email})

	_, err := r.users.Insert(ctx, user, func(existing []domain.User, u *domain.User) error {
		for _, e := range existing {
			if strings.EqualFold(e.Email, u.Email) {
				return apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", u.Email))
			}
		}
		return nil
	})
	if err != nil {
		if !apperror.IsConflict(err) {
			r.logger.Error("Falha ao inserir usuário.", err)
		}
		return domain.User{}, err
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user.WithoutPassword(), nil
}
