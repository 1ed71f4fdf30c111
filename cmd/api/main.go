package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"gretastore/internal/adapter/api"
	"gretastore/internal/adapter/api/handler"
	apimiddleware "gretastore/internal/adapter/api/middleware"
	"gretastore/internal/adapter/api/router"
	"gretastore/internal/adapter/repository"
	domainrepo "gretastore/internal/domain/repository"
	"gretastore/internal/infrastructure/firebase"
	"gretastore/internal/infrastructure/localstore"
	"gretastore/internal/infrastructure/ratelimit"
	"gretastore/internal/infrastructure/websocket"
	"gretastore/internal/usecase"
	"gretastore/pkg/config"
	"gretastore/pkg/logger"
	"gretastore/pkg/response"
)

type backend struct {
	products domainrepo.ProductRepository
	orders   domainrepo.OrderRepository
	profiles domainrepo.ProfileRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt := credentials(cfg)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	store, err := openLocalStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	data, err := openBackend(ctx, cfg, opt)
	if err != nil {
		log.Fatalf("Failed to connect to %s backend: %v", cfg.Backend, err)
	}
	defer data.close()

	firebaseAuthClient, err := firebase.NewFirebaseAuthClient(ctx, authClient, cfg.FirebaseApiKey, store)
	if err != nil {
		log.Fatalf("Failed to initialize Identity Toolkit: %v", err)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	storeUseCase := usecase.NewStoreUseCase(usecase.StoreDeps{
		Products:   data.products,
		Orders:     data.orders,
		Profiles:   data.profiles,
		Cart:       repository.NewLocalCartRepository(store),
		Auth:       firebaseAuthClient,
		Notifier:   wsManager,
		AdminEmail: cfg.AdminEmail,
	})
	storeUseCase.Init(ctx)
	defer storeUseCase.Close()

	handler.Setup(storeUseCase, cfg.CheckoutDelay)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.ErrorHandler

	authLimiter := ratelimit.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	authLimiter.StartCleanupRoutine(ctx.Done())

	router.Setup(e,
		apimiddleware.NewAuthMiddleware(storeUseCase),
		apimiddleware.NewAdminMiddleware(),
		apimiddleware.RateLimit(authLimiter),
		handler.NewWebSocketHandler(wsManager),
	)

	go func() {
		logger.Info("Starting server on port %s (backend %s, local store %s)...", cfg.ServerPort, cfg.Backend, cfg.LocalStore)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}

func credentials(cfg *config.Config) option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	}

	path := cfg.FirebaseServiceAccountPath
	if path == "" {
		path = "./firebase-service-account.json"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Service account file does not exist: %s", path)
	}

	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path)
}

func openLocalStore(ctx context.Context, cfg *config.Config) (domainrepo.LocalStorage, error) {
	switch cfg.LocalStore {
	case "redis":
		return localstore.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	default:
		return localstore.OpenSQLite(ctx, cfg.LocalStorePath)
	}
}

func openBackend(ctx context.Context, cfg *config.Config, opt option.ClientOption) (*backend, error) {
	switch cfg.Backend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		if err := repository.EnsurePostgresSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &backend{
			products: repository.NewPostgresProductRepository(db),
			orders:   repository.NewPostgresOrderRepository(db),
			profiles: repository.NewPostgresProfileRepository(db),
			close:    func() { db.Close() },
		}, nil

	default:
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			return nil, err
		}
		return &backend{
			products: repository.NewFirestoreProductRepository(firestoreClient),
			orders:   repository.NewFirestoreOrderRepository(firestoreClient),
			profiles: repository.NewFirestoreProfileRepository(firestoreClient),
			close:    func() { firestoreClient.Close() },
		}, nil
	}
}
