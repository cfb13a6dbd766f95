package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	catalogapp "github.com/Ammar-000/PointOfSale/internal/application/catalog"
	identityapp "github.com/Ammar-000/PointOfSale/internal/application/identity"
	"github.com/Ammar-000/PointOfSale/internal/application/media"
	orderingapp "github.com/Ammar-000/PointOfSale/internal/application/ordering"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/auth"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/config"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/logger"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/persistence"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/seed"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/storage"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/handler"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log,
		logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)

	stamper := audit.NewStamper(userRepo)

	categoryService := catalogapp.NewCategoryService(categoryRepo, stamper, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, stamper, log)
	orderService := orderingapp.NewOrderService(orderRepo, stamper, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, stamper, log)
	roleService := identityapp.NewRoleService(roleRepo, stamper, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	imageStore, err := storage.NewLocalImageStorage(cfg.Images.BasePath)
	if err != nil {
		log.Fatal("Failed to prepare image storage", zap.Error(err))
	}
	imageService := media.NewImageService(productService, imageStore, log)

	seeder := seed.NewSeeder(userService, roleService, seed.DefaultBootstrapUser(), log)
	if err := seeder.Seed(context.Background()); err != nil {
		log.Fatal("Failed to seed initial data", zap.Error(err))
	}

	engine := router.New(cfg, jwtService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Categories: handler.NewCategoryHandler(categoryService),
		Products:   handler.NewProductHandler(productService, imageService, cfg.Images),
		Orders:     handler.NewOrderHandler(orderService),
		Users:      handler.NewUserHandler(userService),
		Roles:      handler.NewRoleHandler(roleService),
		Waiter:     handler.NewWaiterHandler(categoryService, productService, orderService, imageService, cfg.Images),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
