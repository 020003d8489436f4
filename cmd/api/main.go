package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
)

const (
	dbTimeout    = 3 * time.Second
	maxBodyBytes = 1 << 20
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	databaseDSN := os.Getenv("DB_DSN")
	allowedOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")

	var repo book.Repository
	var pool *pgxpool.Pool
	if databaseDSN != "" {
		pool = mustOpenDB(databaseDSN)
		defer pool.Close()
		repo = book.NewPostgresRepo(pool, dbTimeout)
	} else {
		log.Println("DB_DSN not set, using in-memory store")
		repo = book.NewMemoryRepo()
	}

	service := book.NewService(repo, book.SystemClock{})
	handler := book.NewHTTPHandler(service)

	readiness := func(ctx context.Context) error {
		if pool == nil {
			return nil
		}
		return pool.Ping(ctx)
	}

	router := buildRouter(handler, readiness)

	rateLimit := httpx.NewRateLimitMiddleware(
		getEnvFloat("RATE_LIMIT_RPS", 20),
		getEnvInt("RATE_LIMIT_BURST", 40),
	)

	// Recovery sits inside the access logger so its writer wrapper is the
	// one the panic handler inspects for a partially written response.
	var h http.Handler = router
	h = httpx.RequestSizeLimitMiddleware(maxBodyBytes)(h)
	h = rateLimit.Middleware(h)
	h = httpx.CORSMiddleware(allowedOrigins)(h)
	h = httpx.SecurityHeadersMiddleware(h)
	h = httpx.RecoveryMiddleware(h)
	h = httpx.AccessLogMiddleware(h)
	h = httpx.RequestIDMiddleware(h)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func buildRouter(handler *book.HTTPHandler, ready func(context.Context) error) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /api/books", handler.Create)
	router.HandleFunc("GET /api/books", handler.List)
	router.HandleFunc("PUT /api/books/{id}", handler.Update)
	router.HandleFunc("DELETE /api/books/{id}", handler.Delete)

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("ignoring non-integer %s=%q", key, v)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("ignoring non-numeric %s=%q", key, v)
	}
	return def
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
