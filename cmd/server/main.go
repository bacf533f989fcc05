package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bytebank/bytebank/internal/auth"
	"github.com/bytebank/bytebank/internal/config"
	"github.com/bytebank/bytebank/internal/ledger"
	"github.com/bytebank/bytebank/internal/middleware"
	"github.com/bytebank/bytebank/internal/service"
	"github.com/bytebank/bytebank/internal/storage"
	"github.com/bytebank/bytebank/internal/storage/jsonfile"
	"github.com/bytebank/bytebank/internal/storage/sqlite"
	"github.com/bytebank/bytebank/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Backend)

	logger := slog.Default()
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(authenticator, jwtManager, logger)
	ledgerService := service.NewLedgerService(ledger.NewService(store, logger), logger)

	mux := http.NewServeMux()
	service.RegisterRoutes(mux, authService, ledgerService, jwtManager)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(mux)(middleware.CORS(mux)))

	// Wrap with h2c so HTTP/2 clients work without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.DBPath)
	default:
		return jsonfile.New(cfg.DataDir)
	}
}
