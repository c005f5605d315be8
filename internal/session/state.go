// Package session guarda o estado da sessão da loja: o usuário logado e o
// carrinho, cada um espelhado em sua própria chave do armazenamento.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
)

// Keys são as chaves de persistência dos dois sub-estados.
type Keys struct {
	User string
	Cart string
}

// DefaultKeys devolve "<prefixo>user" e "<prefixo>cart".
func DefaultKeys(prefix string) Keys {
	return Keys{User: kvstore.Key(prefix, kvstore.KeyUser), Cart: kvstore.Key(prefix, kvstore.KeyCart)}
}

// ForSession sufixa as chaves com o id da sessão.
func (k Keys) ForSession(id string) Keys {
	return Keys{User: k.User + ":" + id, Cart: k.Cart + ":" + id}
}

// State é o estado de uma sessão. Toda mutação grava o sub-estado alterado
// de forma síncrona; falhas de gravação são apenas registradas em log.
// As leituras derivadas (CartCount, CartTotal) são calculadas a cada chamada.
type State struct {
	mu   sync.RWMutex
	user *domain.User
	cart []domain.CartItem

	// checkoutMu serializa Checkout sem travar o carrinho durante fn.
	checkoutMu sync.Mutex

	userDoc *kvstore.Document[domain.User]
	cartDoc *kvstore.Document[[]domain.CartItem]
	auth    *Authenticator
	logger  logger.Logger
}

// NewState carrega o estado persistido nas chaves informadas. Valores
// ausentes ou ilegíveis resultam em sessão anônima com carrinho vazio.
func NewState(ctx context.Context, store kvstore.Store, keys Keys, auth *Authenticator, logger logger.Logger) *State {
	s := &State{
		cart:    []domain.CartItem{},
		userDoc: kvstore.NewDocument[domain.User](store, keys.User, nil, 0),
		cartDoc: kvstore.NewDocument[[]domain.CartItem](store, keys.Cart, nil, 0),
		auth:    auth,
		logger:  logger,
	}

	if user, ok, err := s.userDoc.Get(ctx); err != nil {
		logger.Warn("Falha ao restaurar usuário da sessão; iniciando anônima.", map[string]interface{}{"key": keys.User, "error": err.Error()})
	} else if ok {
		s.user = &user
	}

	if cart, ok, err := s.cartDoc.Get(ctx); err != nil {
		logger.Warn("Falha ao restaurar carrinho; iniciando vazio.", map[string]interface{}{"key": keys.Cart, "error": err.Error()})
	} else if ok && cart != nil {
		s.cart = cart
	}
	return s
}

// Login confere as credenciais e, se válidas, define o usuário atual.
// Credenciais inválidas devolvem ok=false e não alteram a sessão.
func (s *State) Login(ctx context.Context, email, password string) (domain.User, bool) {
	user, ok := s.auth.Authenticate(email, password)
	if !ok {
		s.logger.Info("Tentativa de login recusada.", map[string]interface{}{"email": email})
		return domain.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.persistUser(ctx)
	s.logger.Info("Login efetuado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, true
}

// Logout limpa o usuário atual. O carrinho é mantido.
func (s *State) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.persistUser(ctx)
}

// CurrentUser devolve o usuário logado, se houver.
func (s *State) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Cart devolve uma cópia das linhas do carrinho, na ordem de inclusão.
func (s *State) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddToCart soma a quantidade à linha de mesmo (produto, tamanho) ou
// acrescenta uma nova linha ao final.
func (s *State) AddToCart(ctx context.Context, item domain.CartItem) error {
	if item.ProductID == "" {
		return apperror.NewValidationError("O item precisa de um produto.")
	}
	if !item.Size.Valid() {
		return apperror.NewValidationError(fmt.Sprintf("Tamanho '%s' é inválido.", item.Size))
	}
	if item.Quantity <= 0 {
		return apperror.NewValidationError("A quantidade deve ser positiva.")
	}
	if item.Price.IsNegative() {
		return apperror.NewValidationError("O preço não pode ser negativo.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := false
	for i := range s.cart {
		if s.cart[i].SameKey(item.ProductID, item.Size) {
			s.cart[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, item)
	}
	s.persistCart(ctx)
	return nil
}

// RemoveFromCart remove a linha de mesmo (produto, tamanho), se existir.
func (s *State) RemoveFromCart(ctx context.Context, productID string, size domain.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, size)
	s.persistCart(ctx)
}

// UpdateCartQuantity define a quantidade da linha; quantidade <= 0 remove a linha.
func (s *State) UpdateCartQuantity(ctx context.Context, productID string, size domain.Size, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID, size)
	} else {
		for i := range s.cart {
			if s.cart[i].SameKey(productID, size) {
				s.cart[i].Quantity = quantity
				break
			}
		}
	}
	s.persistCart(ctx)
}

// ClearCart esvazia o carrinho.
func (s *State) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = []domain.CartItem{}
	s.persistCart(ctx)
}

// Checkout serializa as finalizações desta sessão. fn recebe o usuário atual
// e uma cópia do carrinho; se fn terminar sem erro, só as quantidades que ela
// recebeu saem do carrinho, e o que foi incluído enquanto fn rodava fica.
// Um segundo Checkout concorrente vê o carrinho já consumido.
func (s *State) Checkout(ctx context.Context, fn func(user domain.User, loggedIn bool, items []domain.CartItem) error) error {
	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	user, loggedIn := s.CurrentUser()
	items := s.Cart()
	if err := fn(user, loggedIn, items); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, done := range items {
		for i := range s.cart {
			if !s.cart[i].SameKey(done.ProductID, done.Size) {
				continue
			}
			s.cart[i].Quantity -= done.Quantity
			if s.cart[i].Quantity <= 0 {
				s.removeLocked(done.ProductID, done.Size)
			}
			break
		}
	}
	s.persistCart(ctx)
	return nil
}

// CartCount é a soma das quantidades.
func (s *State) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// CartTotal é a soma de preço × quantidade.
func (s *State) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *State) removeLocked(productID string, size domain.Size) {
	for i := range s.cart {
		if s.cart[i].SameKey(productID, size) {
			s.cart = append(s.cart[:i:i], s.cart[i+1:]...)
			return
		}
	}
}

// persistUser grava ou remove a chave do usuário. Chamado com s.mu travado.
func (s *State) persistUser(ctx context.Context) {
	var err error
	if s.user == nil {
		err = s.userDoc.Clear(ctx)
	} else {
		err = s.userDoc.Save(ctx, *s.user)
	}
	if err != nil {
		s.logger.Warn("Falha ao persistir usuário da sessão.", map[string]interface{}{"key": s.userDoc.Key(), "error": err.Error()})
	}
}

// persistCart grava o carrinho inteiro. Chamado com s.mu travado.
func (s *State) persistCart(ctx context.Context) {
	if err := s.cartDoc.Save(ctx, s.cart); err != nil {
		s.logger.Warn("Falha ao persistir carrinho.", map[string]interface{}{"key": s.cartDoc.Key(), "error": err.Error()})
	}
}
