package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Drivers de armazenamento chave-valor suportados.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config armazena todas as configurações do serviço CtrlShirt.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Armazenamento chave-valor
	StoreDriver  string
	KeyPrefix    string
	DatabaseURL  string
	RedisAddr    string
	StoreTimeout time.Duration

	// Latência artificial aplicada a toda operação da camada de dados
	SimulatedLatency time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Sessões ociosas saem da memória após SessionIdleTimeout; a varredura
	// roda a cada SessionSweepInterval.
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Eventos de pedido (RabbitMQ). Vazio desativa a publicação.
	AMQPURL          string
	OrderEventsQueue string
	AMQPChannelPool  int
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		KeyPrefix:    getEnv("KEY_PREFIX", "ctrlshirt_"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		StoreTimeout: getDurationEnv("STORE_TIMEOUT_SEC", 5) * time.Second,

		SimulatedLatency: getDurationEnv("SIMULATED_LATENCY_MS", 500) * time.Millisecond,

		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		SessionIdleTimeout:   getDurationEnv("SESSION_IDLE_MIN", 30) * time.Minute,
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_MIN", 5) * time.Minute,

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		AMQPURL:          getEnv("AMQP_URL", ""),
		OrderEventsQueue: getEnv("ORDER_EVENTS_QUEUE", "ctrlshirt.orders"),
		AMQPChannelPool:  getIntEnv("AMQP_CHANNEL_POOL_SIZE", 5),
	}

	if cfg.StoreDriver == StorePostgres && cfg.DatabaseURL == "" {
		log.Fatalf("❌ Erro de Configuração: DATABASE_URL é obrigatória com STORE_DRIVER=%s.", StorePostgres)
	}

	return cfg
}

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável numérica e a devolve como time.Duration (sem unidade).
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
