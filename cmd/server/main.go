package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	exportapp "github.com/retailpos/backend/internal/application/export"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	salesapp "github.com/retailpos/backend/internal/application/sales"
	storeapp "github.com/retailpos/backend/internal/application/store"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/store"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/event"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, transactionRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	inventoryService := inventoryapp.NewInventoryService(productRepo, adjustmentRepo)
	checkoutService := salesapp.NewCheckoutService(productRepo, transactionRepo, adjustmentRepo, customerRepo, settingsRepo)
	reportService := reportapp.NewReportService(transactionRepo, productRepo, customerRepo, settingsRepo)
	settingsService := storeapp.NewSettingsService(settingsRepo)
	exportService := exportapp.NewExportService(productRepo, customerRepo, supplierRepo, transactionRepo, adjustmentRepo, settingsRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, cfg.Auth, log)
	userService := identityapp.NewUserService(userRepo)

	inventoryService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)
	settingsService.SetEventPublisher(eventBus)

	reportCache := cache.New(cfg.Redis, log)
	reportService.SetCache(reportCache)

	eventBus.Subscribe(reportapp.NewLowStockAlertHandler(log))
	eventBus.Subscribe(reportapp.NewCacheInvalidationHandler(reportCache, log))

	if err := seedAdminUser(context.Background(), userRepo, log); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}
	if err := seedSettings(context.Background(), settingsRepo, cfg.Store, log); err != nil {
		log.Fatal("Failed to seed store settings", zap.Error(err))
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	salesHandler := handler.NewSalesHandler(checkoutService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, settingsService)
	reportHandler := handler.NewReportHandler(reportService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	exportHandler := handler.NewExportHandler(exportService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService))

	systemHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	customerHandler.RegisterRoutes(api)
	supplierHandler.RegisterRoutes(api)
	salesHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

// seedAdminUser creates the initial admin account on an empty user table.
// The password must be changed on first login.
func seedAdminUser(ctx context.Context, userRepo identity.UserRepository, log *zap.Logger) error {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("POS_ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	admin, err := identity.NewUser("admin", password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := admin.SetDisplayName("Administrator"); err != nil {
		return err
	}

	if err := userRepo.Save(ctx, admin); err != nil {
		return err
	}

	log.Warn("Seeded default admin user, change its password", zap.String("username", "admin"))
	return nil
}

// seedSettings applies config-file store defaults, but only while the
// settings row has never been edited through the API.
func seedSettings(ctx context.Context, settingsRepo store.SettingsRepository, storeCfg config.StoreConfig, log *zap.Logger) error {
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings.GetVersion() > 1 {
		return nil
	}

	name := settings.StoreName
	if storeCfg.Name != "" {
		name = storeCfg.Name
	}
	currency := settings.Currency
	if storeCfg.Currency != "" {
		currency = valueobject.Currency(storeCfg.Currency)
	}
	taxRate := settings.TaxRatePercent
	if storeCfg.TaxRatePercent > 0 {
		taxRate = decimal.NewFromFloat(storeCfg.TaxRatePercent)
	}
	threshold := settings.LowStockThreshold
	if storeCfg.LowStockThreshold > 0 {
		threshold = storeCfg.LowStockThreshold
	}

	if err := settings.Update(name, settings.Address, settings.Phone, currency, taxRate, threshold, settings.ReceiptFooter); err != nil {
		return err
	}
	settings.ClearDomainEvents()

	if err := settingsRepo.Save(ctx, settings); err != nil {
		return err
	}

	log.Info("Applied store defaults from config",
		zap.String("store", name),
		zap.String("currency", string(currency)),
	)
	return nil
}
