package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/api"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/checkout"
	h "github.com/SouliMathieu/zida-solaire-mobile/internal/http"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/store"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	DBPath          string
	RedisAddr       string
	OfflineMode     bool
	DeliveryFee     int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "https://site-de-l-entreprise-zida-solaire-a-snowy.vercel.app/api"),
		DBPath:          getEnv("DB_PATH", "storefront.db"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		OfflineMode:     getEnvBool("OFFLINE_MODE", false),
		DeliveryFee:     getEnvInt64("DELIVERY_FEE", 0),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// newLogger builds a structured JSON logger; LOG_LEVEL tunes verbosity.
func newLogger() (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))))); err != nil {
		_ = level.UnmarshalText([]byte("info"))
	}

	cfg := zap.Config{
		Level:    level,
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "message",
			TimeKey:     "timestamp",
			LevelKey:    "severity",
			EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
			EncodeLevel: zapcore.CapitalLevelEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := loadConfig()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	kv, err := openKV(cfg)
	if err != nil {
		logger.Fatal("failed to open storage backend", zap.Error(err))
	}
	defer kv.Close()

	cartStore := store.NewCartStore(kv, logger)
	ordersStore := store.NewOrdersStore(kv, logger)
	userStore := store.NewUserStore(kv, logger)

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Tokens:  userStore,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to build api client", zap.Error(err))
	}

	var submitter checkout.OrderSubmitter = client
	if cfg.OfflineMode {
		logger.Info("offline mode: orders are confirmed locally")
		submitter = checkout.LocalSubmitter{}
	}

	checkoutService := checkout.NewService(
		cartStore, ordersStore, userStore, submitter, logger,
		checkout.WithDeliveryFee(cfg.DeliveryFee),
	)

	router := h.NewRouter(
		h.NewCartHandler(cartStore, client, cfg.RequestTimeout),
		h.NewOrdersHandler(ordersStore),
		h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront facade starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown: snapshots are written synchronously on every
	// mutation, so draining in-flight requests is all that is needed.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

// openKV picks the persistence backend: Redis when configured, the local
// bbolt file otherwise.
func openKV(cfg *Config) (storage.KV, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisKV(client, "storefront"), nil
	}
	return storage.NewBoltKV(cfg.DBPath)
}
