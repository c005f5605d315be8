package session

import (
	"context"
	"net/http"
	"time"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
	"ctrlshirt/internal/service/checkoutservice"
	storesession "ctrlshirt/internal/session"
)

// TokenIssuer emite o JWT das rotas administrativas após o login.
type TokenIssuer interface {
	GenerateToken(userID string, userRole domain.UserRole) (string, error)
	Expiry() time.Duration
}

// ProductReader resolve o produto ao incluir no carrinho.
type ProductReader interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
}

// CheckoutService transforma o carrinho em pedido.
type CheckoutService interface {
	Quote(ctx context.Context, items []domain.CartItem, couponCode string) (domain.OrderCreateRequest, error)
	Checkout(ctx context.Context, sess checkoutservice.Session, req domain.CheckoutRequest) (domain.Order, error)
}

// Handler expõe o estado da sessão da loja: login, carrinho e checkout.
type Handler struct {
	Tokens   TokenIssuer
	Products ProductReader
	Checkout CheckoutService
	Logger   logger.Logger
}

func NewHandler(tokens TokenIssuer, products ProductReader, checkout CheckoutService, log logger.Logger) *Handler {
	return &Handler{Tokens: tokens, Products: products, Checkout: checkout, Logger: log}
}

// state extrai a sessão anexada pelo middleware ou responde com erro.
func (h *Handler) state(w http.ResponseWriter, r *http.Request) (*storesession.State, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, h.Logger, apperror.NewInternalError("Sessão não resolvida.", nil))
		return nil, false
	}
	return sess, true
}

func cartView(sess *storesession.State) domain.CartView {
	return domain.CartView{Items: sess.Cart(), Count: sess.CartCount(), Total: sess.CartTotal()}
}

// LoginHandler lida com a requisição POST /v1/session/login.
// @Summary Login na sessão
// @Description Apenas as contas de demonstração são aceitas. Devolve o usuário e um JWT.
// @Tags session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Param login body domain.LoginRequest true "Email e senha"
// @Success 200 {object} domain.LoginResponse
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /v1/session/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}

	var req domain.LoginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}

	user, ok := sess.Login(r.Context(), req.Email, req.Password)
	if !ok {
		httpx.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Email ou senha inválidos."))
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		httpx.Error(w, r, h.Logger, apperror.NewInternalError("Falha ao emitir token.", err))
		return
	}
	resp := domain.LoginResponse{User: user, Token: token, ExpiresIn: int64(h.Tokens.Expiry().Seconds())}
	httpx.Respond(w, r, h.Logger, resp, nil, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /v1/session/logout.
// @Summary Logout da sessão
// @Description O carrinho é mantido.
// @Tags session
// @Param X-Session-ID header string true "ID da sessão"
// @Success 204
// @Router /v1/session/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	sess.Logout(r.Context())
	httpx.Respond(w, r, h.Logger, nil, nil, http.StatusNoContent)
}

// GetSessionHandler lida com a requisição GET /v1/session.
// @Summary Estado da sessão
// @Tags session
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Success 200 {object} domain.SessionView
// @Router /v1/session [get]
func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	view := domain.SessionView{Cart: cartView(sess)}
	if user, ok := sess.CurrentUser(); ok {
		view.User = &user
	}
	httpx.Respond(w, r, h.Logger, view, nil, http.StatusOK)
}

// GetCartHandler lida com a requisição GET /v1/cart.
// @Summary Carrinho da sessão
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Success 200 {object} domain.CartView
// @Router /v1/cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	httpx.Respond(w, r, h.Logger, cartView(sess), nil, http.StatusOK)
}

// AddToCartHandler lida com a requisição POST /v1/cart/items.
// @Summary Inclui um item no carrinho
// @Description Mesma combinação produto/tamanho soma a quantidade.
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Param item body domain.CartAddRequest true "Produto, tamanho e quantidade"
// @Success 200 {object} domain.CartView
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/cart/items [post]
func (h *Handler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}

	var req domain.CartAddRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	if !req.Size.Valid() {
		httpx.Error(w, r, h.Logger, apperror.NewValidationError("Tamanho inválido."))
		return
	}

	product, err := h.Products.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     image,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}
	if err := sess.AddToCart(r.Context(), item); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	httpx.Respond(w, r, h.Logger, cartView(sess), nil, http.StatusOK)
}

// UpdateCartItemHandler lida com a requisição PUT /v1/cart/items/{productId}/{size}.
// @Summary Altera a quantidade de uma linha
// @Description Quantidade zero ou negativa remove a linha.
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Param productId path string true "ID do produto"
// @Param size path string true "Tamanho"
// @Param quantity body domain.CartQuantityUpdate true "Nova quantidade"
// @Success 200 {object} domain.CartView
// @Router /v1/cart/items/{productId}/{size} [put]
func (h *Handler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	var req domain.CartQuantityUpdate
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	sess.UpdateCartQuantity(r.Context(), r.PathValue("productId"), domain.Size(r.PathValue("size")), req.Quantity)
	httpx.Respond(w, r, h.Logger, cartView(sess), nil, http.StatusOK)
}

// RemoveCartItemHandler lida com a requisição DELETE /v1/cart/items/{productId}/{size}.
// @Summary Remove uma linha do carrinho
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Param productId path string true "ID do produto"
// @Param size path string true "Tamanho"
// @Success 200 {object} domain.CartView
// @Router /v1/cart/items/{productId}/{size} [delete]
func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	sess.RemoveFromCart(r.Context(), r.PathValue("productId"), domain.Size(r.PathValue("size")))
	httpx.Respond(w, r, h.Logger, cartView(sess), nil, http.StatusOK)
}

// ClearCartHandler lida com a requisição DELETE /v1/cart.
// @Summary Esvazia o carrinho
// @Tags cart
// @Param X-Session-ID header string false "ID da sessão"
// @Success 204
// @Router /v1/cart [delete]
func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	sess.ClearCart(r.Context())
	httpx.Respond(w, r, h.Logger, nil, nil, http.StatusNoContent)
}

// QuoteHandler lida com a requisição GET /v1/checkout/quote.
// @Summary Simula os valores do pedido
// @Tags checkout
// @Produce json
// @Param X-Session-ID header string false "ID da sessão"
// @Param coupon query string false "Código do cupom"
// @Success 200 {object} domain.OrderCreateRequest
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/checkout/quote [get]
func (h *Handler) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	quote, err := h.Checkout.Quote(r.Context(), sess.Cart(), r.URL.Query().Get("coupon"))
	httpx.Respond(w, r, h.Logger, quote, err, http.StatusOK)
}

// CheckoutHandler lida com a requisição POST /v1/checkout.
// @Summary Finaliza a compra
// @Description Cria um pedido Pendente com o carrinho da sessão e retira do carrinho os itens comprados.
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "ID da sessão"
// @Param checkout body domain.CheckoutRequest true "Endereço e cupom"
// @Success 201 {object} domain.Order
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Estoque insuficiente"
// @Router /v1/checkout [post]
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.state(w, r)
	if !ok {
		return
	}
	var req domain.CheckoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	order, err := h.Checkout.Checkout(r.Context(), sess, req)
	httpx.Respond(w, r, h.Logger, order, err, http.StatusCreated)
}
