package main

import (
	"context"
	"log"

	"taskflow-client/internal/bootstrap"
	"taskflow-client/internal/config"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/server"
	"taskflow-client/internal/tracer"
	"taskflow-client/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing, "taskflow-devstore")
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 3. Database (optional)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Unable to migrate GORM DB: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)

	// 5. Run Server
	srv := server.New(cfg, container, sysLogger)
	log.Fatal(srv.Run())
}
