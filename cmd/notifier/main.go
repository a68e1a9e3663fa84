package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/central-university-dev/go-content-notifier/internal/api"
	"github.com/central-university-dev/go-content-notifier/internal/api/handlers"
	"github.com/central-university-dev/go-content-notifier/internal/common/metrics"
	"github.com/central-university-dev/go-content-notifier/internal/common/middleware"
	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/notify"
	"github.com/central-university-dev/go-content-notifier/internal/registry"
	"github.com/central-university-dev/go-content-notifier/internal/scheduler"
	"github.com/central-university-dev/go-content-notifier/internal/service"
	"github.com/central-university-dev/go-content-notifier/internal/source"
	"github.com/central-university-dev/go-content-notifier/pkg"
)

func gracefulShutdown(
	ctx context.Context,
	server *http.Server,
	updateScheduler *scheduler.Scheduler,
	stopCh <-chan struct{},
	appLogger *slog.Logger,
) {
	<-stopCh
	appLogger.Info("Получен сигнал завершения")

	if updateScheduler != nil {
		updateScheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Ошибка при остановке HTTP сервера",
			"error", err,
		)
	}

	appLogger.Info("Сервер успешно остановлен")
}

func startHTTPServer(server *http.Server, port int, stopCh chan<- struct{}, appLogger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLogger.Info("Получен системный сигнал",
			"signal", sig.String(),
		)
		close(stopCh)
	}()

	go func() {
		appLogger.Info("Запуск HTTP сервера нотификатора",
			"port", port,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Ошибка при запуске HTTP сервера",
				"error", err,
			)
			close(stopCh)
		}
	}()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appLogger := pkg.NewLogger(os.Stdout)

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subscriptionRegistry := registry.NewSubscriptionRegistry()

	contentSource := source.NewClient(cfg, appLogger)

	senderFactory := notify.NewSenderFactory(cfg, appLogger)

	pushSender, err := senderFactory.CreateSender()
	if err != nil {
		appLogger.Error("Ошибка при создании push-транспорта",
			"error", err,
		)

		return err
	}

	dispatcher := notify.NewDispatcher(pushSender, cfg.SiteBaseURL, appLogger)

	snapshot := service.NewContentSnapshot()

	notificationService := service.NewNotificationService(
		contentSource,
		subscriptionRegistry,
		dispatcher,
		snapshot,
		appLogger,
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRegistry, appLogger)
	triggerHandler := handlers.NewTriggerHandler(notificationService, cfg.CronSecret, appLogger)

	router := api.NewRouter(subscriptionHandler, triggerHandler)

	rateLimiter := middleware.NewRateLimiterMiddleware(
		ctx,
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		appLogger,
	)

	metricsMiddleware := middleware.NewMetricsMiddleware()

	serverWithMiddleware := rateLimiter.Middleware(metricsMiddleware.Middleware(router))

	var updateScheduler *scheduler.Scheduler

	if cfg.SchedulerEnabled {
		updateScheduler = scheduler.NewScheduler(notificationService, cfg.SchedulerCheckInterval, appLogger)
		updateScheduler.Start()
	} else {
		appLogger.Info("Встроенный планировщик отключён, проверка запускается внешним cron")
	}

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, appLogger)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик",
				"error", err,
			)
		}
	}()

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           serverWithMiddleware,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCh := make(chan struct{})

	startHTTPServer(httpServer, cfg.ServerPort, stopCh, appLogger)

	gracefulShutdown(ctx, httpServer, updateScheduler, stopCh, appLogger)

	return nil
}
