// Package app wires the dataset, engine, repositories and service together
// for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jengzang/taxi-dashboard/internal/config"
	"github.com/jengzang/taxi-dashboard/internal/database"
	"github.com/jengzang/taxi-dashboard/internal/dataset"
	"github.com/jengzang/taxi-dashboard/internal/repository"
	"github.com/jengzang/taxi-dashboard/internal/service"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

// App holds the initialized components
type App struct {
	Trips     *repository.TripRepository
	Zones     *repository.ZoneRepository
	Dashboard *service.DashboardService
}

// New fetches missing dataset files, opens the engine, registers the trips
// view and the zone table, and builds the dashboard service. Any error here
// is fatal: the dashboard cannot run without both files.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	ctx = logger.WithAction(ctx, "startup")

	if cfg.Dataset.Download {
		if err := dataset.NewProvider(nil, log).Ensure(ctx, dataset.Sources(cfg.Dataset)...); err != nil {
			return nil, fmt.Errorf("failed to fetch dataset: %w", err)
		}
	}

	// 初始化数据库
	err := database.Init(ctx, database.Config{
		Threads:     cfg.Engine.Threads,
		MemoryLimit: cfg.Engine.MemoryLimit,
		MaxConns:    cfg.Engine.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	db := database.GetDB()

	trips := repository.NewTripRepository(db, cfg.Dataset.TripPath(), log)
	if err := trips.Register(ctx); err != nil {
		database.Close()
		return nil, err
	}

	zones := repository.NewZoneRepository(db, log)
	if err := zones.Load(cfg.Dataset.ZonePath()); err != nil {
		database.Close()
		return nil, err
	}
	if err := zones.Register(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to register zones: %w", err)
	}

	log.Info(ctx, "dashboard ready", "trip_file", cfg.Dataset.TripPath(), "zones", zones.Len())

	return &App{
		Trips:     trips,
		Zones:     zones,
		Dashboard: service.NewDashboardService(trips, zones, repository.NewStatsRepository(db, log), log),
	}, nil
}

// Close releases the engine
func (a *App) Close() error {
	return database.Close()
}
