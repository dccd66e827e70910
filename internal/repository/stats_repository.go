package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/internal/query"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
	"github.com/jengzang/taxi-dashboard/pkg/metrics"
	"github.com/jengzang/taxi-dashboard/pkg/round"
)

// StatsRepository runs the dashboard aggregations against a filtered view.
// Every query reads the view lazily; nothing is cached between calls.
type StatsRepository struct {
	db  *sqlx.DB
	log logger.Logger
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sqlx.DB, log logger.Logger) *StatsRepository {
	return &StatsRepository{db: db, log: log}
}

// observe records timing and outcome of one aggregation
func (r *StatsRepository) observe(ctx context.Context, name string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RecordQuery(name, err, elapsed)
	if err != nil {
		r.log.Error(ctx, "aggregation failed", err, "aggregation", name)
		return
	}
	r.log.Debug(ctx, "aggregation done", "aggregation", name, "duration_ms", elapsed.Milliseconds())
}

// Summary returns the metric card values. An empty view yields zeros.
func (r *StatsRepository) Summary(ctx context.Context, view query.FilteredView) (*models.SummaryMetrics, error) {
	q := `SELECT
		COUNT(*) AS total_trips,
		AVG(fare_amount) AS avg_fare,
		SUM(total_amount) AS total_revenue,
		AVG(trip_distance) AS avg_distance,
		AVG(trip_duration_minutes) AS avg_duration
		FROM ` + view.From("f")

	var row struct {
		TotalTrips   int64           `db:"total_trips"`
		AvgFare      sql.NullFloat64 `db:"avg_fare"`
		TotalRevenue sql.NullFloat64 `db:"total_revenue"`
		AvgDistance  sql.NullFloat64 `db:"avg_distance"`
		AvgDuration  sql.NullFloat64 `db:"avg_duration"`
	}

	start := time.Now()
	err := r.db.GetContext(ctx, &row, q, view.Args()...)
	r.observe(ctx, models.AggSummary, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return &models.SummaryMetrics{
		TotalTrips:         row.TotalTrips,
		AvgFare:            round.Money(row.AvgFare.Float64),
		TotalRevenue:       round.Money(row.TotalRevenue.Float64),
		AvgDistanceMiles:   round.Places(row.AvgDistance.Float64, 2),
		AvgDurationMinutes: round.Places(row.AvgDuration.Float64, 1),
	}, nil
}

// TopPickupZones returns the busiest pickup zones, most trips first. Ties are
// broken by zone name, then location id. Trips whose pickup location is not
// in the zone table are dropped by the join.
func (r *StatsRepository) TopPickupZones(ctx context.Context, view query.FilteredView) ([]models.ZoneCount, error) {
	q := fmt.Sprintf(`SELECT
		z.location_id AS location_id,
		z.zone AS zone,
		z.borough AS borough,
		COUNT(*) AS trip_count
		FROM %s
		JOIN %s z ON f.PULocationID = z.location_id
		GROUP BY z.location_id, z.zone, z.borough
		ORDER BY trip_count DESC, zone ASC, location_id ASC
		LIMIT %d`, view.From("f"), ZoneTableName, models.TopZonesLimit)

	zones := []models.ZoneCount{}
	start := time.Now()
	err := r.db.SelectContext(ctx, &zones, q, view.Args()...)
	r.observe(ctx, models.AggTopZones, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get top pickup zones: %w", err)
	}

	return zones, nil
}

// HourlyAverageFare returns the average fare per pickup hour. Hours without
// trips are absent.
func (r *StatsRepository) HourlyAverageFare(ctx context.Context, view query.FilteredView) ([]models.HourlyFare, error) {
	q := `SELECT
		pickup_hour AS hour_of_day,
		AVG(fare_amount) AS avg_fare
		FROM ` + view.From("f") + `
		GROUP BY pickup_hour
		ORDER BY pickup_hour ASC`

	fares := []models.HourlyFare{}
	start := time.Now()
	err := r.db.SelectContext(ctx, &fares, q, view.Args()...)
	r.observe(ctx, models.AggHourlyFares, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get hourly fares: %w", err)
	}

	for i := range fares {
		fares[i].AvgFare = round.Money(fares[i].AvgFare)
	}
	return fares, nil
}

// DistanceHistogram returns trip counts per half-mile bucket up to 30 miles.
// Empty buckets are absent.
func (r *StatsRepository) DistanceHistogram(ctx context.Context, view query.FilteredView) ([]models.DistanceBin, error) {
	perMile := 1 / models.HistogramBinMiles
	q := fmt.Sprintf(`SELECT
		FLOOR(trip_distance * %[1]g) / %[1]g AS bin_start,
		COUNT(*) AS trip_count
		FROM %[2]s
		WHERE trip_distance <= %[3]g
		GROUP BY bin_start
		ORDER BY bin_start ASC`, perMile, view.From("f"), models.MaxHistogramMiles)

	bins := []models.DistanceBin{}
	start := time.Now()
	err := r.db.SelectContext(ctx, &bins, q, view.Args()...)
	r.observe(ctx, models.AggDistanceHistogram, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get distance histogram: %w", err)
	}

	return bins, nil
}

// PaymentBreakdown returns trip counts and shares per payment type, fewest
// trips first, ties by code
func (r *StatsRepository) PaymentBreakdown(ctx context.Context, view query.FilteredView) ([]models.PaymentShare, error) {
	q := `SELECT
		payment_type,
		COUNT(*) AS total
		FROM ` + view.From("f") + `
		GROUP BY payment_type
		ORDER BY total ASC, payment_type ASC`

	shares := []models.PaymentShare{}
	start := time.Now()
	err := r.db.SelectContext(ctx, &shares, q, view.Args()...)
	r.observe(ctx, models.AggPaymentTypes, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment breakdown: %w", err)
	}

	var total int64
	for _, s := range shares {
		total += s.Total
	}
	for i := range shares {
		shares[i].Label = shares[i].PaymentType.Label()
		shares[i].Percentage = round.Percent(shares[i].Total, total)
	}
	return shares, nil
}

// DayHourHeatmap returns trip counts for every weekday and hour, zero where
// no trips were picked up
func (r *StatsRepository) DayHourHeatmap(ctx context.Context, view query.FilteredView) (*models.HeatmapGrid, error) {
	q := `SELECT
		pickup_dow,
		pickup_hour,
		COUNT(*) AS trip_count
		FROM ` + view.From("f") + `
		GROUP BY pickup_dow, pickup_hour`

	var cells []models.HeatmapCell
	start := time.Now()
	err := r.db.SelectContext(ctx, &cells, q, view.Args()...)
	r.observe(ctx, models.AggHeatmap, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get heatmap: %w", err)
	}

	grid := models.DensifyHeatmap(cells)
	return &grid, nil
}
