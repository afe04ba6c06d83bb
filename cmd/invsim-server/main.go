package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appservices "github.com/planhorizon/invsim/pkg/application/services"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
	"github.com/planhorizon/invsim/pkg/infrastructure/events"
	"github.com/planhorizon/invsim/pkg/infrastructure/logging"
	"github.com/planhorizon/invsim/pkg/infrastructure/metrics"
	"github.com/planhorizon/invsim/pkg/infrastructure/repositories/memory"
	"github.com/planhorizon/invsim/pkg/infrastructure/repositories/sqlite"
	"github.com/planhorizon/invsim/pkg/interfaces/api/handlers"
)

const serviceName = "invsim-server"

func main() {
	var (
		addr     = flag.String("addr", ":8080", "Listen address")
		database = flag.String("db", "", "SQLite database for run persistence (default: in-memory)")
		logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(*logLevel)
	logger := logging.New(logConfig)
	logger.SetDefault()

	if err := run(*addr, *database, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, database string, logger *logging.Logger) error {
	var runRepo repositories.RunRepository
	if database != "" {
		sqliteRepo, err := sqlite.NewRunRepository(database)
		if err != nil {
			return fmt.Errorf("error opening run database: %w", err)
		}
		defer sqliteRepo.Close()
		runRepo = sqliteRepo
		logger.Info("Using SQLite run store", "path", database)
	} else {
		runRepo = memory.NewRunRepository()
		logger.Info("Using in-memory run store")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	seriesRepo := memory.NewSeriesRepository()
	service := appservices.NewSimulationService(seriesRepo, runRepo, events.NewInMemoryEventStore(), m, logger)
	handler := handlers.NewSimulationHandler(service, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return err
	}

	logger.Info("Server stopped")
	return nil
}
