package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ems/internal/config"
	"ems/internal/db"
	"ems/internal/domain/employee"
	"ems/internal/domain/identity"
	"ems/internal/domain/org"
	"ems/internal/domain/reports"
	authhandler "ems/internal/transport/http/handlers/auth"
	employeehandler "ems/internal/transport/http/handlers/employees"
	orghandler "ems/internal/transport/http/handlers/org"
	reportshandler "ems/internal/transport/http/handlers/reports"
	"ems/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	users := identity.NewService(identity.NewStore(pool, cfg.QueryTimeout))
	employees := employee.NewService(employee.NewStore(pool, cfg.QueryTimeout))
	orgService := org.NewService(org.NewStore(pool, cfg.QueryTimeout))
	reportsService := reports.NewService(reports.NewStore(pool, cfg.QueryTimeout))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders(cfg.Production()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(cfg.RateLimitPerMinute, time.Minute))
			authhandler.NewHandler(users, cfg).RegisterRoutes(r)
		})

		employeehandler.NewHandler(employees, cfg).RegisterRoutes(r)
		orghandler.NewHandler(orgService, cfg).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, cfg).RegisterRoutes(r)
	})

	log.Printf("EMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
