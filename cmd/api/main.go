package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/api"
	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/config"
	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/ratelimit"
	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/storage"
	httptransport "github.com/brandondoesreviews-afk/healthy-weight-range/internal/transport/http"
	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

func main() {
	cfg := config.Load()

	store, cleanup := buildStore(cfg)
	defer cleanup()

	counter := usage.NewService(store)

	handler := api.NewHandler(counter)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	limiter := ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limited := ratelimit.Middleware(limiter, nil)

	// Increment is the only mutating endpoint, so it alone sits behind
	// the rate limiter.
	root := http.NewServeMux()
	root.Handle("/usage/increment", limited(mux))
	root.Handle("/", mux)

	// Simple CORS middleware for local dev
	cors := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	// Basic request logger with a per-request id
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("[%s] %s %s", uuid.NewString(), r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, cors(logger(root)))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("healthy-weight-range service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func buildStore(cfg config.Config) (usage.Store, func()) {
	switch cfg.CounterBackend {
	case "redis":
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		log.Printf("using Redis counter store at %s", addr)
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		opts := []storage.RedisOption{}
		if cfg.RedisKey != "" {
			opts = append(opts, storage.WithKey(cfg.RedisKey))
		}
		return storage.NewRedisStore(rdb, opts...), func() { _ = rdb.Close() }
	case "postgres":
		if cfg.PostgresDSN == "" {
			log.Fatalf("COUNTER_BACKEND=postgres requires POSTGRES_DSN")
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("connecting to Postgres: %v", err)
		}
		store := storage.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("preparing counter schema: %v", err)
		}
		log.Printf("using Postgres counter store")
		return store, pool.Close
	case "memory":
		log.Printf("using in-memory counter store, counts reset on restart")
		return storage.NewMemoryStore(), func() {}
	default:
		log.Printf("using file counter store at %s", cfg.CounterFile)
		return storage.NewFileStore(cfg.CounterFile), func() {}
	}
}
