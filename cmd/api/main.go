package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/proposal-ai/internal/application"
	appgen "github.com/bryanwahyu/proposal-ai/internal/application/generation"
	appsettings "github.com/bryanwahyu/proposal-ai/internal/application/settings"
	"github.com/bryanwahyu/proposal-ai/internal/config"
	domgen "github.com/bryanwahyu/proposal-ai/internal/domain/generation"
	ollamaGateway "github.com/bryanwahyu/proposal-ai/internal/infra/ai/ollama"
	openaiGateway "github.com/bryanwahyu/proposal-ai/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/proposal-ai/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/proposal-ai/internal/infra/db/postgres"
	"github.com/bryanwahyu/proposal-ai/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/proposal-ai/internal/infra/storage"
	"github.com/bryanwahyu/proposal-ai/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// init gateway
	var gateway domgen.Gateway
	switch cfg.AI.Provider {
	case "openai":
		gateway = openaiGateway.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	default:
		gateway = ollamaGateway.NewClient(cfg.AI.BaseURL, cfg.AI.Model)
	}

	healthCheckers := map[string]middleware.HealthChecker{
		"inference": &middleware.GatewayHealthChecker{Probe: gateway.Probe},
	}

	// connect database (optional: settings/personas only)
	var setSvc *appsettings.Service
	genSvc := &appgen.Service{
		Gateway: gateway,
		Model:   cfg.AI.Model,
		Clock:   application.SystemClock{},
	}

	if cfg.Database.Host != "" {
		switch cfg.Database.Driver {
		case "postgres":
			db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
			if err != nil {
				log.Fatalf("postgres connect error: %v", err)
			}
			defer db.Close()
			setSvc = &appsettings.Service{
				Settings: postgresp.NewSettingRepository(db),
				Personas: postgresp.NewPersonaRepository(db),
				Clock:    application.SystemClock{},
			}
			genSvc.Personas = postgresp.NewPersonaRepository(db)
			healthCheckers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		default:
			db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
			if err != nil {
				log.Fatalf("mysql connect error: %v", err)
			}
			defer db.Close()
			setSvc = &appsettings.Service{
				Settings: mysqlp.NewSettingRepository(db),
				Personas: mysqlp.NewPersonaRepository(db),
				Clock:    application.SystemClock{},
			}
			genSvc.Personas = mysqlp.NewPersonaRepository(db)
			healthCheckers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		}
	}

	// init minio archive (optional)
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		genSvc.Archive = store
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(10, 1))
	mux.Use(middleware.APIKeyAuth(cfg.Server.APIKey))
	mux.Get("/healthz", middleware.HealthHandler(healthCheckers))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(genSvc, setSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // generation calls can hold the connection up to 60s
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s (model=%s provider=%s)", addr, cfg.AI.Model, cfg.AI.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
