package repository

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/database"
	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

// ZoneTableName is the engine table the zone lookup is copied into for joins
const ZoneTableName = "zones"

// ZoneRepository holds the taxi zone lookup table. It is loaded once and
// read-only afterwards.
type ZoneRepository struct {
	mu    sync.RWMutex
	db    *sqlx.DB
	log   logger.Logger
	zones map[int]models.Zone
}

// NewZoneRepository creates an empty zone repository
func NewZoneRepository(db *sqlx.DB, log logger.Logger) *ZoneRepository {
	return &ZoneRepository{
		db:    db,
		log:   log,
		zones: make(map[int]models.Zone),
	}
}

// Load reads the zone lookup CSV at path, replacing any previous contents
func (r *ZoneRepository) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return models.NewDataLoadError(path, "zone file not accessible", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return models.NewDataLoadError(path, "unreadable zone file", df.Err)
	}
	if df.Nrow() == 0 {
		return models.NewDataLoadError(path, "zone file has no rows", nil)
	}

	names := df.Names()
	var missing []string
	for _, c := range models.RequiredZoneColumns {
		if !slices.Contains(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return models.NewDataLoadError(path, "missing columns "+strings.Join(missing, ", "), nil)
	}

	ids := df.Col(models.ColZoneLocationID).Records()
	boroughs := df.Col(models.ColZoneBorough).Records()
	zoneNames := df.Col(models.ColZoneName).Records()
	serviceZones := make([]string, len(ids))
	if slices.Contains(names, models.ColZoneServiceZone) {
		serviceZones = df.Col(models.ColZoneServiceZone).Records()
	}

	zones := make(map[int]models.Zone, len(ids))
	for i, raw := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return models.NewDataLoadError(path, fmt.Sprintf("row %d: invalid location id %q", i+1, raw), err)
		}
		if _, dup := zones[id]; dup {
			return models.NewDataLoadError(path, fmt.Sprintf("row %d: duplicate location id %d", i+1, id), nil)
		}
		zones[id] = models.Zone{
			LocationID:  id,
			Borough:     boroughs[i],
			Name:        zoneNames[i],
			ServiceZone: serviceZones[i],
		}
	}

	r.mu.Lock()
	r.zones = zones
	r.mu.Unlock()

	return nil
}

// Register copies the loaded zones into the engine table used for joins
func (r *ZoneRepository) Register(ctx context.Context) error {
	zones := r.All()

	err := database.Transaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE OR REPLACE TABLE %s (
			location_id INTEGER PRIMARY KEY,
			borough VARCHAR,
			zone VARCHAR,
			service_zone VARCHAR
		)`, ZoneTableName)); err != nil {
			return fmt.Errorf("failed to create zones table: %w", err)
		}

		stmt, err := tx.PreparexContext(ctx, fmt.Sprintf(
			"INSERT INTO %s (location_id, borough, zone, service_zone) VALUES (?, ?, ?, ?)", ZoneTableName))
		if err != nil {
			return fmt.Errorf("failed to prepare zone insert: %w", err)
		}
		defer stmt.Close()

		for _, z := range zones {
			if _, err := stmt.ExecContext(ctx, z.LocationID, z.Borough, z.Name, z.ServiceZone); err != nil {
				return fmt.Errorf("failed to insert zone %d: %w", z.LocationID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info(ctx, "zones table registered", "zones", len(zones))
	return nil
}

// Lookup returns the zone with the given location id
func (r *ZoneRepository) Lookup(id int) (models.Zone, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, ok := r.zones[id]
	return z, ok
}

// Len returns the number of loaded zones
func (r *ZoneRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.zones)
}

// All returns the loaded zones ordered by location id
func (r *ZoneRepository) All() []models.Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]models.Zone, 0, len(r.zones))
	for _, z := range r.zones {
		zones = append(zones, z)
	}
	slices.SortFunc(zones, func(a, b models.Zone) int {
		return a.LocationID - b.LocationID
	})
	return zones
}
