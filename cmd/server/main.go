// Command task-keeper-server starts the task-keeper HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/blobstore/postgres"
	"github.com/and161185/task-keeper/internal/migrate"
	httpserver "github.com/and161185/task-keeper/internal/server/http"
	"github.com/and161185/task-keeper/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// main parses configuration, wires storage, and serves the API until a
// termination signal arrives.
func main() {
	// .env is optional; flags override environment
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("TK_ADDR", ":8080"), "listen address")
	dsn := flag.String("dsn", envOr("TK_DSN", ""), "PostgreSQL DSN (empty = file store)")
	dataFile := flag.String("data", envOr("TK_DATA", "task-keeper.json"), "data file when no DSN is given")
	jwtKey := flag.String("jwt-key", envOr("TK_JWT_KEY", ""), "HS256 signing key (required)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "access token TTL")
	origins := flag.String("cors-origins", envOr("TK_CORS_ORIGINS", ""), "comma-separated allowed CORS origins")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *jwtKey == "" {
		logger.Fatal("missing jwt signing key (--jwt-key or TK_JWT_KEY)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store blobstore.Store
	if *dsn != "" {
		if err := migrate.Up(ctx, *dsn); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		db, err := postgres.New(ctx, *dsn)
		if err != nil {
			logger.Fatal("postgres connect", zap.Error(err))
		}
		defer db.Close()
		store = postgres.NewStore(ctx, db)
	} else {
		store = blobstore.NewFile(*dataFile)
	}

	users := storage.NewUserStore(store, logger)
	creds := storage.NewCredentialStore(store, logger)
	todos := storage.NewTodoStore(store, logger)

	srv := httpserver.New(users, creds, todos, []byte(*jwtKey), *tokenTTL, logger)

	var allowed []string
	if *origins != "" {
		allowed = strings.Split(*origins, ",")
	}
	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(allowed),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
