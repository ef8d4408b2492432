package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	httpin "github.com/suchimauz/clinic-slot-planner/internal/adapters/in/http"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/backend"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/cache"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/export"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
	"github.com/suchimauz/clinic-slot-planner/internal/core/services/slot_generator_service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewZapLogger(cfg.Log.Level, cfg.Log.Format, cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"cacheDriver":     cfg.Cache.Driver,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	var backendAdapter out.ClinicBackendPort
	if cfg.ClinicAPI.URL != "" {
		backendAdapter = backend.NewClinicBackendAdapter(cfg, mainLogger)
	} else {
		logger.Warn("app.backend.disabled", out.LogFields{
			"message": "CLINIC_API_URL is empty, availability and creation are unavailable",
		})
	}

	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger)
	if err != nil {
		logger.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if closer, ok := cacheAdapter.(io.Closer); ok {
		defer closer.Close()
	}

	exporter := export.NewSlotExporter(cfg, mainLogger)

	// Инициализация сервиса
	slotGeneratorService := slot_generator_service.NewSlotGeneratorService(
		cfg,
		backendAdapter,
		cacheAdapter,
		exporter,
		mainLogger,
	)

	// Настройка HTTP сервера
	controller := httpin.NewSlotGeneratorController(slotGeneratorService, cfg, mainLogger)
	srv := &http.Server{
		Addr:              cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:           httpin.NewRouter(controller),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	listener, err := rabbitmq.NewBookingListener(slotGeneratorService, cfg, mainLogger)
	if err != nil {
		logger.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if listener != nil {
		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"clinicApi": map[string]string{
					"url":      cfg.ClinicAPI.URL,
					"username": cfg.ClinicAPI.Username,
				},
				"rabbitmq": map[string]interface{}{
					"enabled":  cfg.RabbitMQ.Enabled,
					"queue":    cfg.RabbitMQ.Queue,
					"exchange": cfg.RabbitMQ.Exchange,
					"binds":    cfg.RabbitMQ.Binds,
				},
				"cache": map[string]interface{}{
					"enabled":      cfg.Cache.Enabled,
					"driver":       cfg.Cache.Driver,
					"bookingsSize": cfg.Cache.BookingsSize,
					"ttl":          cfg.Cache.TTL.String(),
				},
				"slots": map[string]int{
					"defaultHorizonDays": cfg.Slots.DefaultHorizonDays,
					"maxHorizonDays":     cfg.Slots.MaxHorizonDays,
				},
			},
		})
	}

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	logger.Info("app.stopped", out.LogFields{})
}
