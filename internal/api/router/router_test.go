package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ctrlshirt/internal/api/category"
	"ctrlshirt/internal/api/coupon"
	"ctrlshirt/internal/api/dashboard"
	"ctrlshirt/internal/api/order"
	"ctrlshirt/internal/api/product"
	"ctrlshirt/internal/api/router"
	sessionapi "ctrlshirt/internal/api/session"
	settingsapi "ctrlshirt/internal/api/settings"
	"ctrlshirt/internal/api/stock"
	"ctrlshirt/internal/api/user"
	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/events"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
	"ctrlshirt/internal/pkg/token"
	"ctrlshirt/internal/repository/categoryrepo"
	"ctrlshirt/internal/repository/couponrepo"
	"ctrlshirt/internal/repository/orderrepo"
	"ctrlshirt/internal/repository/productrepo"
	"ctrlshirt/internal/repository/seed"
	"ctrlshirt/internal/repository/settingsrepo"
	"ctrlshirt/internal/repository/userrepo"
	"ctrlshirt/internal/service/categoryservice"
	"ctrlshirt/internal/service/checkoutservice"
	"ctrlshirt/internal/service/couponservice"
	"ctrlshirt/internal/service/dashboardservice"
	"ctrlshirt/internal/service/orderservice"
	"ctrlshirt/internal/service/productservice"
	"ctrlshirt/internal/service/settingsservice"
	"ctrlshirt/internal/service/stockservice"
	"ctrlshirt/internal/service/userservice"
	"ctrlshirt/internal/session"
)

const prefix = "test_"

// newServer monta a aplicação inteira sobre o armazenamento em memória.
func newServer(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewLoggerWithWriter("error", &bytes.Buffer{})
	store := kvstore.NewMemoryStore()

	productRepo := productrepo.NewProductRepository(store, prefix, 0, log)
	categoryRepo := categoryrepo.NewCategoryRepository(store, prefix, 0, log)
	orderRepo := orderrepo.NewOrderRepository(store, prefix, 0, log)
	userRepo := userrepo.NewUserRepository(store, prefix, 0, log)
	couponRepo := couponrepo.NewCouponRepository(store, prefix, 0, log)
	settingsRepo := settingsrepo.NewSettingsRepository(store, prefix, 0, log)

	productSvc := productservice.NewService(productRepo, log)
	stockSvc := stockservice.NewService(productRepo, log)
	orderSvc := orderservice.NewService(orderRepo, log)
	userSvc := userservice.NewService(userRepo, log).WithHashCost(bcrypt.MinCost)
	couponSvc := couponservice.NewService(couponRepo, log)
	settingsSvc := settingsservice.NewService(settingsRepo, log)
	checkoutSvc := checkoutservice.NewService(stockSvc, couponSvc, settingsSvc, orderSvc, events.NoopPublisher{}, log)

	auth, err := session.NewAuthenticator(seed.DemoAccounts(), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := token.NewService("segredo-de-teste", time.Hour)

	return router.NewRouter(router.Handlers{
		Product:   product.NewHandler(productSvc, log),
		Stock:     stock.NewHandler(stockSvc, log),
		Category:  category.NewHandler(categoryservice.NewService(categoryRepo, log), log),
		Order:     order.NewHandler(orderSvc, log),
		User:      user.NewHandler(userSvc, orderSvc, log),
		Coupon:    coupon.NewHandler(couponSvc, log),
		Settings:  settingsapi.NewHandler(settingsSvc, log),
		Dashboard: dashboard.NewHandler(dashboardservice.NewService(orderRepo, userRepo, log), log),
		Session:   sessionapi.NewHandler(tokens, productSvc, checkoutSvc, log),
	}, router.Deps{
		Tokens:     tokens,
		Sessions:   session.NewRegistry(store, prefix, auth, log),
		Counter:    store,
		KeyPrefix:  prefix,
		RateLimit:  1000,
		RateWindow: time.Minute,
		Logger:     log,
	})
}

type client struct {
	t         *testing.T
	srv       http.Handler
	sessionID string
	token     string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if c.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, c.sessionID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	if id := rec.Header().Get(middleware.SessionHeader); id != "" {
		c.sessionID = id
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (c *client) login(email, password string) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/v1/session/login", domain.LoginRequest{Email: email, Password: password})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	c.token = decode[domain.LoginResponse](c.t, rec).Token
}

func TestPing(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}
	rec := c.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestSwaggerDoc(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}
	rec := c.do(http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CtrlShirt API")
}

func TestStorefront_PublicReads(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	rec := c.do(http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Product](t, rec), 10)

	rec = c.do(http.MethodGet, "/v1/products?category=4", nil)
	assert.Len(t, decode[[]domain.Product](t, rec), 2)

	rec = c.do(http.MethodGet, "/v1/products/pixel-invader", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decode[domain.Product](t, rec).ID)

	rec = c.do(http.MethodGet, "/v1/products/nao-existe", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/v1/categories/sci-fi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sci-Fi", decode[domain.Category](t, rec).Name)

	rec = c.do(http.MethodGet, "/v1/settings", nil)
	assert.Equal(t, "CtrlShirt", decode[domain.Settings](t, rec).StoreName)
}

func TestCoupons_Validate(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	rec := c.do(http.MethodPost, "/v1/coupons/validate", domain.CouponValidationRequest{Code: "geek10"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[domain.Coupon](t, rec).DiscountPercentage)

	rec = c.do(http.MethodPost, "/v1/coupons/validate", domain.CouponValidationRequest{Code: "EXPIRED"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/v1/admin/dashboard", nil).Code)

	c.login("customer@test.com", "password")
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/v1/admin/dashboard", nil).Code)

	m := &client{t: t, srv: c.srv}
	m.login("manager@ctrlshirt.com", "manager")
	assert.Equal(t, http.StatusOK, m.do(http.MethodGet, "/v1/admin/dashboard", nil).Code)
	assert.Equal(t, http.StatusForbidden, m.do(http.MethodPut, "/v1/admin/settings", domain.Settings{StoreName: "X"}).Code)
}

func TestSession_LoginFailureKeepsAnonymous(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	rec := c.do(http.MethodPost, "/v1/session/login", domain.LoginRequest{Email: "admin@ctrlshirt.com", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	view := decode[domain.SessionView](t, c.do(http.MethodGet, "/v1/session", nil))
	assert.Nil(t, view.User)
}

func TestCart_AddUpdateRemove(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	rec := c.do(http.MethodPost, "/v1/cart/items", domain.CartAddRequest{ProductID: "1", Size: domain.SizeM, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[domain.CartView](t, rec)
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, "159.8", cart.Total.String())
	assert.Equal(t, "Pixel Invader", cart.Items[0].Name)

	rec = c.do(http.MethodPut, "/v1/cart/items/1/M", domain.CartQuantityUpdate{Quantity: 5})
	assert.Equal(t, 5, decode[domain.CartView](t, rec).Count)

	rec = c.do(http.MethodPut, "/v1/cart/items/1/M", domain.CartQuantityUpdate{Quantity: 0})
	assert.Empty(t, decode[domain.CartView](t, rec).Items)

	rec = c.do(http.MethodPost, "/v1/cart/items", domain.CartAddRequest{ProductID: "1", Size: "XXL", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/v1/cart/items", domain.CartAddRequest{ProductID: "999", Size: domain.SizeM, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_IsolatedPerSession(t *testing.T) {
	srv := newServer(t)
	a := &client{t: t, srv: srv}
	b := &client{t: t, srv: srv}

	a.do(http.MethodPost, "/v1/cart/items", domain.CartAddRequest{ProductID: "2", Size: domain.SizeG, Quantity: 1})
	b.do(http.MethodGet, "/v1/cart", nil)

	require.NotEqual(t, a.sessionID, b.sessionID)
	assert.Equal(t, 1, decode[domain.CartView](t, a.do(http.MethodGet, "/v1/cart", nil)).Count)
	assert.Equal(t, 0, decode[domain.CartView](t, b.do(http.MethodGet, "/v1/cart", nil)).Count)
}

func TestCheckout_EndToEnd(t *testing.T) {
	srv := newServer(t)

	admin := &client{t: t, srv: srv}
	admin.login("admin@ctrlshirt.com", "admin")
	rec := admin.do(http.MethodPost, "/v1/admin/stock/adjust", domain.StockAdjustmentRequest{ProductID: "1", Size: domain.SizeM, Delta: 10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	shopper := &client{t: t, srv: srv}
	address := domain.ShippingAddress{FullName: "Customer Test", Address: "Rua A, 1", City: "Recife", PostalCode: "50000-000"}

	// Anônimo não finaliza.
	shopper.do(http.MethodPost, "/v1/cart/items", domain.CartAddRequest{ProductID: "1", Size: domain.SizeM, Quantity: 2})
	rec = shopper.do(http.MethodPost, "/v1/checkout", domain.CheckoutRequest{ShippingAddress: address})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	shopper.login("customer@test.com", "password")

	rec = shopper.do(http.MethodGet, "/v1/checkout/quote?coupon=GEEK10", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quote := decode[domain.OrderCreateRequest](t, rec)
	assert.Equal(t, "159.8", quote.Subtotal.String())
	assert.Equal(t, "15.98", quote.Discount.String())

	rec = shopper.do(http.MethodPost, "/v1/checkout", domain.CheckoutRequest{ShippingAddress: address, CouponCode: "geek10"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Order](t, rec)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "3", created.UserID)
	assert.Equal(t, "Brasil", created.ShippingAddress.Country)
	assert.Equal(t, "158.82", created.Total.StringFixed(2))

	assert.Equal(t, 0, decode[domain.CartView](t, shopper.do(http.MethodGet, "/v1/cart", nil)).Count)

	mine := decode[[]domain.Order](t, shopper.do(http.MethodGet, "/v1/account/orders", nil))
	assert.Len(t, mine, 3)

	// Painel vê o pedido e avança o status.
	rec = admin.do(http.MethodPatch, "/v1/admin/orders/"+created.ID+"/status", domain.OrderStatusUpdate{Status: domain.StatusProcessing})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = admin.do(http.MethodPatch, "/v1/admin/orders/"+created.ID+"/status", domain.OrderStatusUpdate{Status: domain.StatusPending})
	assert.Equal(t, http.StatusConflict, rec.Code)

	stats := decode[domain.DashboardStats](t, admin.do(http.MethodGet, "/v1/admin/dashboard", nil))
	assert.Equal(t, 3, stats.TotalOrders)
}

func TestAccountOrders_HidesOtherUsers(t *testing.T) {
	srv := newServer(t)
	c := &client{t: t, srv: srv}
	c.login("manager@ctrlshirt.com", "manager")

	rec := c.do(http.MethodGet, "/v1/account/orders/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_AndCustomerDetail(t *testing.T) {
	srv := newServer(t)
	c := &client{t: t, srv: srv}

	rec := c.do(http.MethodPost, "/v1/register", domain.UserRegistration{Name: "Nova", Email: "nova@test.com", Password: "segredo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "segredo")

	rec = c.do(http.MethodPost, "/v1/register", domain.UserRegistration{Name: "Nova", Email: "NOVA@test.com", Password: "segredo"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	admin := &client{t: t, srv: srv}
	admin.login("admin@ctrlshirt.com", "admin")
	detail := decode[domain.CustomerDetail](t, admin.do(http.MethodGet, "/v1/admin/customers/3", nil))
	assert.Equal(t, "customer@test.com", detail.User.Email)
	assert.Len(t, detail.Orders, 2)
}

func TestAdminCatalog_CRUD(t *testing.T) {
	srv := newServer(t)
	admin := &client{t: t, srv: srv}
	admin.login("admin@ctrlshirt.com", "admin")

	rec := admin.do(http.MethodPost, "/v1/admin/categories", domain.CategoryCreateRequest{Name: "Board Games"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode[domain.Category](t, rec)
	assert.Equal(t, "board-games", cat.Slug)

	rec = admin.do(http.MethodPost, "/v1/admin/products", map[string]interface{}{
		"name":       "Meeple Power",
		"price":      "69.90",
		"categoryId": cat.ID,
		"images":     []string{"https://picsum.photos/seed/m/800/800"},
		"sizes":      []map[string]interface{}{{"size": "M", "stock": 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Product](t, rec)
	assert.Equal(t, "meeple-power", created.Slug)

	rec = admin.do(http.MethodDelete, "/v1/admin/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, admin.do(http.MethodGet, "/v1/admin/products/"+created.ID, nil).Code)

	rec = admin.do(http.MethodPost, "/v1/admin/coupons", domain.CouponCreateRequest{Code: "ctrl20", DiscountPercentage: 5, IsActive: true})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInvalidJSON_IsValidationError(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestReviews_AuthorIsSessionUser(t *testing.T) {
	c := &client{t: t, srv: newServer(t)}

	rec := c.do(http.MethodPost, "/v1/products/3/reviews", domain.ReviewRequest{Rating: 5, Comment: "Top"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.login("customer@test.com", "password")
	rec = c.do(http.MethodPost, "/v1/products/3/reviews", domain.ReviewRequest{Author: "Outro", Rating: 5, Comment: "Top"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Customer Test", decode[domain.Review](t, rec).Author)

	rec = c.do(http.MethodGet, "/v1/products/galactic-empire-recruit", nil)
	reviews := decode[domain.Product](t, rec).Reviews
	assert.Equal(t, "Top", reviews[len(reviews)-1].Comment)
}

func TestAdminStock_SummaryAndNegativeAdjust(t *testing.T) {
	admin := &client{t: t, srv: newServer(t)}
	admin.login("admin@ctrlshirt.com", "admin")

	summary := decode[[]domain.StockSummary](t, admin.do(http.MethodGet, "/v1/admin/stock", nil))
	require.Len(t, summary, 10)

	rec := admin.do(http.MethodPost, "/v1/admin/stock/adjust", domain.StockAdjustmentRequest{ProductID: "1", Size: domain.SizeP, Delta: -1000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
