package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/internal/query"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
	"github.com/jengzang/taxi-dashboard/pkg/metrics"
)

// TripRepository handles engine operations on the trips view
type TripRepository struct {
	db   *sqlx.DB
	path string
	view query.TripView
	log  logger.Logger
}

// NewTripRepository creates a trip repository over the Parquet file at path
func NewTripRepository(db *sqlx.DB, path string, log logger.Logger) *TripRepository {
	return &TripRepository{
		db:   db,
		path: path,
		view: query.NewTripView(),
		log:  log,
	}
}

// View returns the registered trips view
func (r *TripRepository) View() query.TripView {
	return r.view
}

// Register validates the trip file and (re)defines the trips view over it.
// Nothing is read beyond the file's schema.
func (r *TripRepository) Register(ctx context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		return models.NewDataLoadError(r.path, "trip file not accessible", err)
	}
	if info.IsDir() {
		return models.NewDataLoadError(r.path, "trip file is a directory", nil)
	}
	if info.Size() == 0 {
		return models.NewDataLoadError(r.path, "trip file is empty", nil)
	}

	var columns []string
	schemaSQL := fmt.Sprintf("SELECT name FROM parquet_schema(%s)", query.QuoteLiteral(r.path))
	if err := r.db.SelectContext(ctx, &columns, schemaSQL); err != nil {
		return models.NewDataLoadError(r.path, "unreadable parquet schema", err)
	}

	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, c := range models.RequiredTripColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return models.NewDataLoadError(r.path, "missing columns "+strings.Join(missing, ", "), nil)
	}

	if _, err := r.db.ExecContext(ctx, r.view.CreateSQL(r.path)); err != nil {
		return models.NewDataLoadError(r.path, "failed to create trips view", err)
	}

	r.log.Info(ctx, "trips view registered", "path", r.path, "view", r.view.Name)
	return nil
}

// DateBounds returns the first and last pickup date in the view
func (r *TripRepository) DateBounds(ctx context.Context) (*models.DateBounds, error) {
	var bounds models.DateBounds
	start := time.Now()
	err := r.db.GetContext(ctx, &bounds, r.view.DateBoundsSQL())
	metrics.RecordQuery("date-bounds", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to get date bounds: %w", err)
	}

	return &bounds, nil
}

// Count returns the number of trips in view
func (r *TripRepository) Count(ctx context.Context, view query.FilteredView) (int64, error) {
	var count int64
	start := time.Now()
	err := r.db.GetContext(ctx, &count, view.CountSQL(), view.Args()...)
	metrics.RecordQuery("count", err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}

	return count, nil
}

// Sample returns up to limit trips of view ordered by pickup time
func (r *TripRepository) Sample(ctx context.Context, view query.FilteredView, limit int) ([]models.TripRecord, error) {
	q := fmt.Sprintf("SELECT * FROM %s ORDER BY tpep_pickup_datetime LIMIT ?", view.From("s"))

	var trips []models.TripRecord
	if err := r.db.SelectContext(ctx, &trips, q, append(view.Args(), limit)...); err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}

	return trips, nil
}
