package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callcenter-analysis-be/internal/bootstrap"
	"callcenter-analysis-be/internal/config"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/server"
	"callcenter-analysis-be/internal/tracer"
	"callcenter-analysis-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if !cfg.IsProduction() {
		// Production schemas are owned by cmd/migrate.
		if err := gormDB.AutoMigrate(model.AllModels()...); err != nil {
			log.Panicf("AutoMigrate failed: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	shutdownTracer := tracer.InitTracer(cfg.Telemetry, container.Logger)

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			container.Logger.Error("Main", "Archive consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		container.Logger.Info("Main", "Shutting down", nil)

		container.WebSocketHub.Shutdown()
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("Main", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	cancel()
	container.Close()

	tctx, tcancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer tcancel()
	_ = shutdownTracer(tctx)
}
