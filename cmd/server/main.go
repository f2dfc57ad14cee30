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

	"github.com/ledgerline/company-transfer-service/internal/adapter/http/controller"
	"github.com/ledgerline/company-transfer-service/internal/adapter/http/middleware"
	"github.com/ledgerline/company-transfer-service/internal/adapter/http/router"
	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/memory"
	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/postgres"
	redisrepo "github.com/ledgerline/company-transfer-service/internal/adapter/repository/redis"
	"github.com/ledgerline/company-transfer-service/internal/adapter/repository/repo_interfaces"
	"github.com/ledgerline/company-transfer-service/internal/config"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/usecase/services"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	companyRepo := postgres.NewCompanyRepository(db)
	transferRepo := postgres.NewTransferRepository(db)

	var idempotencyRepo repo_interfaces.IdempotencyRepository
	switch cfg.IdempotencyBackend {
	case config.IdempotencyBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		idempotencyRepo = redisrepo.NewIdempotencyRepository(client, cfg.IdempotencyTTL)
	case config.IdempotencyBackendMemory:
		idempotencyRepo = memory.NewIdempotencyRepository()
	default:
		idempotencyRepo = postgres.NewIdempotencyRepository(db)
	}

	clock := domain.SystemClock{}
	registry := services.NewCompanyRegistry(companyRepo, nil, nil)
	enrollmentService := services.NewEnrollmentService(registry, companyRepo, idempotencyRepo, clock)
	transferService := services.NewTransferService(companyRepo, transferRepo, clock, nil)
	queryService := services.NewCompanyQueryService(companyRepo, clock)

	companyController := controller.NewCompanyController(enrollmentService, queryService)
	transferController := controller.NewTransferController(transferService)
	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)

	mux := router.New(companyController, transferController, authMiddleware)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
