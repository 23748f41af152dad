package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/clinic-scheduling-service/internal/app"
	"github.com/m04kA/clinic-scheduling-service/internal/config"
	appointmentsService "github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
)

const runTimeout = 20 * time.Second

// completion-worker периодически сохраняет статус COMPLETED для записей с прошедшим слотом
// Наблюдаемый статус вычисляется и без него, воркер только синхронизирует хранилище
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("completion-worker: in-memory storage is not shared between processes, nothing to do")
		return
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(rootCtx, cfg, log)
	if err != nil {
		log.Fatal("completion-worker: failed to initialize: %v", err)
	}
	defer application.Close()

	interval := cfg.Scheduling.CompletionInterval.Duration
	log.Info("completion-worker: started, interval=%s", interval)

	// Первый проход сразу при старте
	runOnce(rootCtx, application.AppointmentService, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info("completion-worker: shutdown signal received, stopping")
			return
		case <-ticker.C:
			runOnce(rootCtx, application.AppointmentService, log)
		}
	}
}

func runOnce(ctx context.Context, svc *appointmentsService.Service, log *logger.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	completed, err := svc.CompleteElapsed(runCtx)
	if err != nil {
		log.Error("completion-worker: run failed: %v", err)
		return
	}
	log.Info("completion-worker: run complete in %s, completed=%d", time.Since(start), completed)
}
