package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/storefront/internal/api/http/context"
	"github.com/dtroode/storefront/internal/api/http/router"
	httpServer "github.com/dtroode/storefront/internal/api/http/server"
	"github.com/dtroode/storefront/internal/config"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/persist"
	"github.com/dtroode/storefront/internal/repository/postgres"
	"github.com/dtroode/storefront/internal/server"
	"github.com/dtroode/storefront/internal/service"
	storage "github.com/dtroode/storefront/internal/storage/minio"
	"github.com/dtroode/storefront/internal/store"
	"github.com/dtroode/storefront/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	persister, err := newPersister(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize state persistence", "backend", cfg.Persist.Backend, "error", err)
	}
	st := store.New(persister, logger)

	validate := validator.New()
	tokenManager := token.NewJWT(cfg.JWT.Secret,
		token.WithAccessTTL(cfg.JWT.AccessTTL),
		token.WithRefreshTTL(cfg.JWT.RefreshTTL),
	)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(userRepo, tokenService, validate, logger)

	if authService.Restore(ctx, st.State().Session) {
		logger.Info("restored persisted session")
	}
	stopSync, err := service.NewSessionSync(authService, st, logger).Start(ctx)
	if err != nil {
		logger.Fatal("failed to start session sync", "error", err)
	}
	defer stopSync()

	catalogService := service.NewCatalog(productRepo, categoryRepo, st, logger)
	checkoutService := service.NewCheckout(orderRepo, st, validate, logger)
	adminService := service.NewAdmin(roleRepo, orderRepo, productRepo, categoryRepo, validate, logger)

	handler := router.New(
		st,
		authService,
		tokenService,
		catalogService,
		checkoutService,
		adminService,
		httpctx.NewManager(),
		logger,
	).Register()
	srv := httpServer.NewHTTPServer(handler, cfg.HTTP.Address)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFile, cfg.HTTP.KeyFile)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newPersister(ctx context.Context, cfg *config.Config) (store.Persister, error) {
	switch cfg.Persist.Backend {
	case config.PersistMemory:
		return persist.NewMemory(), nil
	case config.PersistMinio:
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket,
			storage.WithPrefix(cfg.Storage.Prefix),
			storage.WithContentType("application/json"),
		)
		if err != nil {
			return nil, err
		}
		return persist.NewBlob(client, cfg.Persist.Key, persist.DefaultBlobTimeout), nil
	default:
		return persist.NewFile(cfg.Persist.Dir, cfg.Persist.Key)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
