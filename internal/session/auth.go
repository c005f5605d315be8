package session

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/repository/seed"
)

// Authenticator confere credenciais contra a allow-list fixa de contas de
// demonstração, não contra a coleção de usuários. As senhas ficam apenas
// como hash bcrypt em memória.
type Authenticator struct {
	accounts []account
}

type account struct {
	user domain.User
	hash []byte
}

// NewAuthenticator gera os hashes das contas informadas com o custo dado.
func NewAuthenticator(demos []seed.Demo, cost int) (*Authenticator, error) {
	accounts := make([]account, 0, len(demos))
	for _, d := range demos {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar hash da conta %s: %w", d.User.Email, err)
		}
		accounts = append(accounts, account{user: d.User.WithoutPassword(), hash: hash})
	}
	return &Authenticator{accounts: accounts}, nil
}

// Authenticate devolve o usuário se e-mail e senha conferem.
// Credencial inválida não é erro: ok apenas é false.
func (a *Authenticator) Authenticate(email, password string) (domain.User, bool) {
	email = strings.TrimSpace(email)
	for _, acc := range a.accounts {
		if !strings.EqualFold(acc.user.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
			return domain.User{}, false
		}
		return acc.user, true
	}
	return domain.User{}, false
}
