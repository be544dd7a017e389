package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/retailbooks/backend/internal/application/billing"
	catalogapp "github.com/retailbooks/backend/internal/application/catalog"
	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	orderingapp "github.com/retailbooks/backend/internal/application/ordering"
	partnerapp "github.com/retailbooks/backend/internal/application/partner"
	reportapp "github.com/retailbooks/backend/internal/application/report"
	tradeapp "github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/infrastructure/cache"
	"github.com/retailbooks/backend/internal/infrastructure/config"
	"github.com/retailbooks/backend/internal/infrastructure/logger"
	"github.com/retailbooks/backend/internal/infrastructure/payment"
	"github.com/retailbooks/backend/internal/infrastructure/persistence"
	"github.com/retailbooks/backend/internal/infrastructure/scheduler"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
	"github.com/retailbooks/backend/internal/interfaces/http/handler"
	"github.com/retailbooks/backend/internal/interfaces/http/middleware"
	"github.com/retailbooks/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	alertRepo := persistence.NewGormStockAlertRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	purchaseReturnRepo := persistence.NewGormPurchaseReturnRepository(db.DB)
	saleReturnRepo := persistence.NewGormSaleReturnRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	sequencer := persistence.NewGormSequencer(db.DB)

	// Payment gateway
	gateway, err := payment.NewRazorpayAdapter(cfg.Razorpay)
	if err != nil {
		log.Fatal("failed to configure payment gateway", zap.Error(err))
	}

	// Dashboard cache is optional: without Redis the rollup recomputes
	// on every request.
	var summaryCache reportapp.SummaryCache
	if redisCache, err := cache.NewRedisSummaryCache(cfg.Redis); err != nil {
		log.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
	} else {
		summaryCache = redisCache
		defer redisCache.Close() //nolint:errcheck
	}

	// Application services
	ledgerSvc := ledgerapp.NewService(ledgerRepo)
	productSvc := catalogapp.NewProductService(productRepo, alertRepo)
	alertSvc := catalogapp.NewStockAlertService(alertRepo)
	customerSvc := partnerapp.NewCustomerService(customerRepo, sequencer)
	supplierSvc := partnerapp.NewSupplierService(supplierRepo, sequencer)
	billSvc := billingapp.NewBillService(billRepo, productRepo, customerSvc, ledgerSvc, sequencer)
	purchaseSvc := tradeapp.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, ledgerSvc, sequencer)
	purchaseReturnSvc := tradeapp.NewPurchaseReturnService(purchaseReturnRepo, productRepo, supplierRepo, ledgerSvc, sequencer)
	saleReturnSvc := tradeapp.NewSaleReturnService(saleReturnRepo, billRepo, productRepo, customerRepo, ledgerSvc, sequencer)
	cartSvc := orderingapp.NewCartService(cartRepo, productRepo)
	orderSvc := orderingapp.NewOrderService(orderRepo, cartRepo, productRepo, gateway)
	dashboardSvc := reportapp.NewDashboardService(dashboardRepo, alertRepo, summaryCache, cfg.Dashboard.CacheTTL)

	// HTTP engine
	if err := dto.RegisterValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	router.New(engine).Register(
		handler.NewSystemHandler(db.DB, version, log),
		handler.NewProductHandler(productSvc, alertSvc, log),
		handler.NewCustomerHandler(customerSvc, log),
		handler.NewSupplierHandler(supplierSvc, log),
		handler.NewLedgerHandler(ledgerSvc, log),
		handler.NewBillHandler(billSvc, log),
		handler.NewPurchaseHandler(purchaseSvc, log),
		handler.NewPurchaseReturnHandler(purchaseReturnSvc, log),
		handler.NewSaleReturnHandler(saleReturnSvc, log),
		handler.NewCartHandler(cartSvc, log),
		handler.NewOrderHandler(orderSvc, log),
		handler.NewPaymentWebhookHandler(orderSvc, gateway, log),
		handler.NewDashboardHandler(dashboardSvc, log),
	).Setup()

	// Order auto-progression sweep
	var progressScheduler *scheduler.OrderProgressScheduler
	if cfg.Scheduler.Enabled {
		progressScheduler = scheduler.NewOrderProgressScheduler(orderSvc, cfg.Scheduler, log)
		progressScheduler.Start(context.Background())
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if progressScheduler != nil {
		progressScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.CORSAllowHeaders
	}
	return corsCfg
}
