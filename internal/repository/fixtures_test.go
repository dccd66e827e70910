package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/fixture"
	"github.com/jengzang/taxi-dashboard/internal/query"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

var (
	trip      = fixture.Trip
	openDB    = fixture.OpenDB
	writeFile = fixture.WriteFile
)

const fixtureZones = fixture.Zones

type env struct {
	db    *sqlx.DB
	trips *TripRepository
	zones *ZoneRepository
	stats *StatsRepository
	view  query.TripView
}

// newFixture registers the given trips and the fixture zones
func newFixture(t *testing.T, rows ...fixture.TripRow) *env {
	t.Helper()
	tuples := make([]string, len(rows))
	for i, r := range rows {
		tuples[i] = r.Tuple()
	}
	return newFixtureTuples(t, tuples)
}

func newFixtureTuples(t *testing.T, tuples []string) *env {
	t.Helper()
	ctx := context.Background()
	db := openDB(t)
	dir := t.TempDir()
	log := logger.Nop()

	tripPath := filepath.Join(dir, "trips.parquet")
	fixture.WriteTuples(t, db, tripPath, tuples)

	zonePath := filepath.Join(dir, "zones.csv")
	writeFile(t, zonePath, fixtureZones)

	e := &env{
		db:    db,
		trips: NewTripRepository(db, tripPath, log),
		zones: NewZoneRepository(db, log),
		stats: NewStatsRepository(db, log),
	}
	e.view = e.trips.View()

	if err := e.trips.Register(ctx); err != nil {
		t.Fatalf("Register trips: %v", err)
	}
	if err := e.zones.Load(zonePath); err != nil {
		t.Fatalf("Load zones: %v", err)
	}
	if err := e.zones.Register(ctx); err != nil {
		t.Fatalf("Register zones: %v", err)
	}
	return e
}
