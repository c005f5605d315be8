package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registra a especificação Swagger gerada.
	_ "ctrlshirt/docs"

	"ctrlshirt/internal/api/category"
	"ctrlshirt/internal/api/coupon"
	"ctrlshirt/internal/api/dashboard"
	"ctrlshirt/internal/api/order"
	"ctrlshirt/internal/api/product"
	"ctrlshirt/internal/api/session"
	"ctrlshirt/internal/api/settings"
	"ctrlshirt/internal/api/stock"
	"ctrlshirt/internal/api/user"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product   *product.Handler
	Stock     *stock.Handler
	Category  *category.Handler
	Order     *order.Handler
	User      *user.Handler
	Coupon    *coupon.Handler
	Settings  *settings.Handler
	Dashboard *dashboard.Handler
	Session   *session.Handler
}

// Deps são as peças de infraestrutura usadas pelos middlewares.
type Deps struct {
	Tokens     middleware.TokenService
	Sessions   middleware.SessionRegistry
	Counter    kvstore.Counter // nil desliga o rate limit
	KeyPrefix  string
	RateLimit  int
	RateWindow time.Duration
	Logger     logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, d Deps) http.Handler {
	mux := http.NewServeMux()

	withSession := middleware.NewSessionMiddleware(d.Sessions)
	admin := middleware.RequireAdminPanel(d.Tokens, d.Logger)
	settingsAdmin := middleware.RequireSettings(d.Tokens, d.Logger)

	// --- 1. Health Check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Vitrine (pública) ---
	mux.HandleFunc("GET /v1/products", h.Product.GetProductsHandler)
	mux.HandleFunc("GET /v1/products/{slug}", h.Product.GetProductBySlugHandler)
	mux.HandleFunc("POST /v1/products/{id}/reviews", withSession(h.Product.AddReviewHandler))
	mux.HandleFunc("GET /v1/categories", h.Category.GetAllCategoriesHandler)
	mux.HandleFunc("GET /v1/categories/{slug}", h.Category.GetCategoryBySlugHandler)
	mux.HandleFunc("GET /v1/settings", h.Settings.GetSettingsHandler)
	mux.HandleFunc("POST /v1/coupons/validate", h.Coupon.ValidateCouponHandler)
	mux.HandleFunc("POST /v1/register", h.User.RegisterUserHandler)

	// --- 3. Sessão, carrinho e checkout ---
	mux.HandleFunc("GET /v1/session", withSession(h.Session.GetSessionHandler))
	mux.HandleFunc("POST /v1/session/login", withSession(h.Session.LoginHandler))
	mux.HandleFunc("POST /v1/session/logout", withSession(h.Session.LogoutHandler))
	mux.HandleFunc("GET /v1/cart", withSession(h.Session.GetCartHandler))
	mux.HandleFunc("DELETE /v1/cart", withSession(h.Session.ClearCartHandler))
	mux.HandleFunc("POST /v1/cart/items", withSession(h.Session.AddToCartHandler))
	mux.HandleFunc("PUT /v1/cart/items/{productId}/{size}", withSession(h.Session.UpdateCartItemHandler))
	mux.HandleFunc("DELETE /v1/cart/items/{productId}/{size}", withSession(h.Session.RemoveCartItemHandler))
	mux.HandleFunc("GET /v1/checkout/quote", withSession(h.Session.QuoteHandler))
	mux.HandleFunc("POST /v1/checkout", withSession(h.Session.CheckoutHandler))
	mux.HandleFunc("GET /v1/account/orders", withSession(h.Order.GetMyOrdersHandler))
	mux.HandleFunc("GET /v1/account/orders/{id}", withSession(h.Order.GetMyOrderHandler))

	// --- 4. Painel administrativo (admin e manager) ---
	mux.HandleFunc("GET /v1/admin/dashboard", admin(h.Dashboard.GetDashboardStatsHandler))

	mux.HandleFunc("POST /v1/admin/products", admin(h.Product.CreateProductHandler))
	mux.HandleFunc("GET /v1/admin/products/{id}", admin(h.Product.GetProductByIDHandler))
	mux.HandleFunc("PUT /v1/admin/products/{id}", admin(h.Product.UpdateProductHandler))
	mux.HandleFunc("DELETE /v1/admin/products/{id}", admin(h.Product.DeleteProductHandler))

	mux.HandleFunc("GET /v1/admin/stock", admin(h.Stock.GetStockSummaryHandler))
	mux.HandleFunc("POST /v1/admin/stock/adjust", admin(h.Stock.AdjustStockHandler))

	mux.HandleFunc("POST /v1/admin/categories", admin(h.Category.CreateCategoryHandler))
	mux.HandleFunc("GET /v1/admin/categories/{id}", admin(h.Category.GetCategoryByIDHandler))
	mux.HandleFunc("PUT /v1/admin/categories/{id}", admin(h.Category.UpdateCategoryHandler))
	mux.HandleFunc("DELETE /v1/admin/categories/{id}", admin(h.Category.DeleteCategoryHandler))

	mux.HandleFunc("GET /v1/admin/orders", admin(h.Order.GetOrdersHandler))
	mux.HandleFunc("GET /v1/admin/orders/{id}", admin(h.Order.GetOrderByIDHandler))
	mux.HandleFunc("PATCH /v1/admin/orders/{id}/status", admin(h.Order.UpdateOrderStatusHandler))

	mux.HandleFunc("GET /v1/admin/customers", admin(h.User.GetCustomersHandler))
	mux.HandleFunc("GET /v1/admin/customers/{id}", admin(h.User.GetCustomerHandler))

	mux.HandleFunc("GET /v1/admin/coupons", admin(h.Coupon.GetCouponsHandler))
	mux.HandleFunc("POST /v1/admin/coupons", admin(h.Coupon.CreateCouponHandler))
	mux.HandleFunc("GET /v1/admin/coupons/{id}", admin(h.Coupon.GetCouponByIDHandler))
	mux.HandleFunc("PUT /v1/admin/coupons/{id}", admin(h.Coupon.UpdateCouponHandler))
	mux.HandleFunc("DELETE /v1/admin/coupons/{id}", admin(h.Coupon.DeleteCouponHandler))

	// --- 5. Configurações (apenas admin) ---
	mux.HandleFunc("PUT /v1/admin/settings", settingsAdmin(h.Settings.UpdateSettingsHandler))

	// --- 6. Middlewares globais ---
	var handler http.Handler = mux
	if d.Counter != nil && d.RateLimit > 0 {
		handler = middleware.RateLimiter(d.Counter, d.KeyPrefix, d.RateLimit, d.RateWindow, d.Logger)(handler)
	}
	return middleware.RequestLogger(d.Logger)(handler)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
