package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"shepherd-laundry/config"
	"shepherd-laundry/internal/api"
	"shepherd-laundry/internal/labels"
	"shepherd-laundry/internal/metrics"
	"shepherd-laundry/internal/notification"
	"shepherd-laundry/internal/schedule"
	"shepherd-laundry/internal/seed"
	"shepherd-laundry/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "laundryd ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("no configuration at %s; using defaults", configPath)
		cfg = config.Default()
	case err != nil:
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	default:
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	// Load seed data
	data := seed.Default()
	if cfg.Seed.Path != "" {
		data, err = seed.Load(cfg.Seed.Path)
		if err != nil {
			logger.Fatalf("failed to load seed data from %s: %v", cfg.Seed.Path, err)
		}
		logger.Printf("seed data loaded from %s", cfg.Seed.Path)
	} else {
		logger.Println("using built-in demo household")
	}

	app := store.New(seed.Data{}, store.Options{
		LowConsumableRatio: cfg.Alerts.LowConsumableRatio,
		Location:           cfg.Schedule.Location,
	})
	defer app.Close()
	if err := app.ReplaceAll(data); err != nil {
		logger.Fatalf("seed data rejected: %v", err)
	}
	logger.Println("data store initialized")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)
	recorder.Watch(app)
	defer recorder.Stop()

	// Push alerts are optional.
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}

		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, app, webpushOptions, recorder)
		pool.Start(ctx)

		watcher := notification.NewWatcher(app, pool, labels.ForLanguage(cfg.Alerts.Language))
		watcher.Start()
		defer watcher.Stop()
		logger.Printf("push alerts enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; push alerts disabled")
	}

	// Day rollover
	scheduler, err := schedule.New(app, cfg.Schedule.Location, cfg.Schedule.CheckInterval)
	if err != nil {
		logger.Fatalf("failed to create scheduler: %v", err)
	}
	scheduler.Start()

	// Seed hot reload
	if cfg.Seed.Path != "" && cfg.Seed.Watch {
		reloader := seed.NewReloader(cfg.Seed.Path, app, cfg.Seed.Debounce)
		go func() {
			if err := reloader.Run(ctx); err != nil {
				logger.Printf("seed reloader stopped: %v", err)
			}
		}()
	}

	// Initialize router
	router, stopRouter := api.NewRouter(app, webpushOptions, cfg.Server, reg)
	defer stopRouter()
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
		// Event streams end with ctx instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	if err := scheduler.Stop(); err != nil {
		logger.Printf("scheduler shutdown: %v", err)
	}

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
