package main

import (
	"os"
	"sync"
	"time"

	"github.com/eokafor/librarium/config"
	"github.com/eokafor/librarium/handler"
	"github.com/eokafor/librarium/internal/jsonlog"
	"github.com/eokafor/librarium/repository"
	"github.com/eokafor/librarium/repository/postgres"
	"github.com/eokafor/librarium/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/robfig/cron/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Other shared resources: waitgroup and in-memory cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, any](30 * time.Second))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, cache, service)

	// Overdue sweep: promote open issues past their due date on a schedule.
	// The service logs each run's outcome.
	if cfg.Sweep.Enabled {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Sweep.Schedule, func() {
			service.MarkOverdueIssues()
		})
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
