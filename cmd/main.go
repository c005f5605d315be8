// @title CtrlShirt API
// @version 1.0
// @description API da loja CtrlShirt: catálogo, carrinho, checkout e painel administrativo.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	// Nossos pacotes de infraestrutura e utilitários
	"ctrlshirt/config"
	"ctrlshirt/internal/pkg/database"
	"ctrlshirt/internal/pkg/events"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/token"
	"ctrlshirt/internal/session"

	// Camadas para Injeção de Dependências
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
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço CtrlShirt...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"store": cfg.StoreDriver, "env": cfg.Environment})

	// 2. Armazenamento chave-valor
	store, counter, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("Falha ao abrir o armazenamento.", err)
	}
	defer closeStore()
	log.Info("Armazenamento pronto.", map[string]interface{}{"driver": cfg.StoreDriver, "prefix": cfg.KeyPrefix})

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	latency := kvstore.Latency(cfg.SimulatedLatency)

	// A. Repositórios
	productRepo := productrepo.NewProductRepository(store, cfg.KeyPrefix, latency, log)
	categoryRepo := categoryrepo.NewCategoryRepository(store, cfg.KeyPrefix, latency, log)
	orderRepo := orderrepo.NewOrderRepository(store, cfg.KeyPrefix, latency, log)
	userRepo := userrepo.NewUserRepository(store, cfg.KeyPrefix, latency, log)
	couponRepo := couponrepo.NewCouponRepository(store, cfg.KeyPrefix, latency, log)
	settingsRepo := settingsrepo.NewSettingsRepository(store, cfg.KeyPrefix, latency, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços
	productSvc := productservice.NewService(productRepo, log)
	stockSvc := stockservice.NewService(productRepo, log)
	categorySvc := categoryservice.NewService(categoryRepo, log)
	orderSvc := orderservice.NewService(orderRepo, log)
	userSvc := userservice.NewService(userRepo, log)
	couponSvc := couponservice.NewService(couponRepo, log)
	settingsSvc := settingsservice.NewService(settingsRepo, log)
	dashboardSvc := dashboardservice.NewService(orderRepo, userRepo, log)

	// C. Eventos de pedido
	publisher, closePublisher := newPublisher(cfg, log)
	defer closePublisher()
	checkoutSvc := checkoutservice.NewService(stockSvc, couponSvc, settingsSvc, orderSvc, publisher, log)
	log.Debug("Serviços inicializados.", nil)

	// D. Sessão e Tokens (JWT)
	auth, err := session.NewAuthenticator(seed.DemoAccounts(), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Falha ao preparar contas de demonstração.", err)
	}
	sessions := session.NewRegistry(store, cfg.KeyPrefix, auth, log).WithIdleTimeout(cfg.SessionIdleTimeout)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.SessionSweepInterval)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Sessões e Tokens JWT inicializados.", nil)

	// E. Handlers
	handlers := router.Handlers{
		Product:   product.NewHandler(productSvc, log),
		Stock:     stock.NewHandler(stockSvc, log),
		Category:  category.NewHandler(categorySvc, log),
		Order:     order.NewHandler(orderSvc, log),
		User:      user.NewHandler(userSvc, orderSvc, log),
		Coupon:    coupon.NewHandler(couponSvc, log),
		Settings:  settingsapi.NewHandler(settingsSvc, log),
		Dashboard: dashboard.NewHandler(dashboardSvc, log),
		Session:   sessionapi.NewHandler(tokenSvc, productSvc, checkoutSvc, log),
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, router.Deps{
		Tokens:     tokenSvc,
		Sessions:   sessions,
		Counter:    counter,
		KeyPrefix:  cfg.KeyPrefix,
		RateLimit:  cfg.RateLimitMaxRequests,
		RateWindow: cfg.RateLimitPeriod,
		Logger:     log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor CtrlShirt ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

// openStore abre o backend escolhido em STORE_DRIVER. O contador do rate
// limit usa o próprio backend quando ele suporta, senão a memória do processo.
func openStore(cfg *config.Config) (kvstore.Store, kvstore.Counter, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		rs, err := kvstore.NewRedisStore(cfg.RedisAddr, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, nil, err
		}
		return rs, rs, func() { rs.Close() }, nil

	case config.StorePostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, nil, err
		}
		return kvstore.NewPostgresStore(db, cfg.StoreTimeout), kvstore.NewMemoryStore(), func() { db.Close() }, nil

	default:
		ms := kvstore.NewMemoryStore()
		return ms, ms, func() {}, nil
	}
}

// newPublisher conecta ao RabbitMQ quando AMQP_URL está definida. Sem broker
// (ou com falha na conexão) os eventos são descartados e a loja segue.
func newPublisher(cfg *config.Config, log logger.Logger) (events.OrderPublisher, func()) {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{Logger: log}, func() {}
	}

	pool, err := events.NewChannelPool(cfg.AMQPURL, cfg.OrderEventsQueue, cfg.AMQPChannelPool, log)
	if err != nil {
		log.Warn("RabbitMQ indisponível; eventos de pedido desativados.", map[string]interface{}{"error": err.Error()})
		return events.NoopPublisher{Logger: log}, func() {}
	}
	log.Info("Publicação de eventos de pedido ativa.", map[string]interface{}{"queue": cfg.OrderEventsQueue})
	return events.NewRabbitPublisher(pool, log), pool.Close
}
