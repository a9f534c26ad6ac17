package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	appledger "github.com/pharmalitics/backend/internal/application/ledger"
	appreport "github.com/pharmalitics/backend/internal/application/report"
	"github.com/pharmalitics/backend/internal/infrastructure/config"
	"github.com/pharmalitics/backend/internal/infrastructure/export"
	"github.com/pharmalitics/backend/internal/infrastructure/logger"
	"github.com/pharmalitics/backend/internal/infrastructure/persistence"
	"github.com/pharmalitics/backend/internal/interfaces/http/handler"
	"github.com/pharmalitics/backend/internal/interfaces/http/middleware"
	"github.com/pharmalitics/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

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

	log.Info("Starting Pharmalitics backend",
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
	log.Info("Database connected")

	// Repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	pharmacyRepo := persistence.NewGormPharmacyRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)

	// Application services
	saleService := appledger.NewSaleService(saleRepo)
	productService := appledger.NewProductService(productRepo)
	pharmacyService := appledger.NewPharmacyService(pharmacyRepo)
	analyticsService := appanalytics.NewAnalyticsService(statsRepo)
	reportService := appreport.NewReportService(statsRepo)

	// PDF rendering is optional; CSV and Excel exports work without Chrome
	var pdfRenderer export.PDFRenderer
	if cfg.Export.PDFEnabled {
		renderer, err := export.NewChromedpRenderer(&export.ChromedpConfig{
			ExecPath:  cfg.Export.ChromePath,
			Timeout:   cfg.Export.RenderTimeout,
			NoSandbox: cfg.App.Env != "production",
			Logger:    log,
		})
		if err != nil {
			log.Warn("PDF renderer unavailable, continuing without it", zap.Error(err))
		} else {
			pdfRenderer = renderer
			defer func() {
				_ = renderer.Close()
			}()
		}
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewPharmacyHandler(pharmacyService)).
		Register(handler.NewAnalyticsHandler(analyticsService)).
		Register(handler.NewReportHandler(reportService, pdfRenderer)).
		Register(handler.NewSystemHandler(db, cfg.App.Name, version)).
		Setup()

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
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
