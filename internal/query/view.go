// Package query composes the lazily evaluated SQL views the dashboard runs
// on. Nothing here touches the engine: views are SQL text plus bound
// arguments, so the engine can push projections and filters down into the
// Parquet scan and fuse the user filter with whichever aggregate runs next.
package query

import (
	"fmt"
	"strings"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// TripViewName is the engine view holding admitted trips with derived columns
const TripViewName = "trips"

// durationExpr is the whole-minute difference between pickup and dropoff
const durationExpr = "date_diff('minute', tpep_pickup_datetime, tpep_dropoff_datetime)"

// AdmissionPredicates is the fixed data-quality floor every trip must pass.
// It is not user adjustable.
var AdmissionPredicates = []string{
	"tpep_pickup_datetime IS NOT NULL",
	"tpep_dropoff_datetime IS NOT NULL",
	"PULocationID IS NOT NULL",
	"DOLocationID IS NOT NULL",
	"fare_amount IS NOT NULL",
	"trip_distance > 0",
	"fare_amount >= 0",
	fmt.Sprintf("fare_amount <= %.1f", models.MaxFareAmount),
	"tpep_dropoff_datetime >= tpep_pickup_datetime",
}

// TripView names the registered trips view
type TripView struct {
	Name string
}

// NewTripView returns the default trips view
func NewTripView() TripView {
	return TripView{Name: TripViewName}
}

// CreateSQL returns the statement that (re)defines the view over the Parquet
// file at path
func (v TripView) CreateSQL(path string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE OR REPLACE VIEW %s AS\nSELECT\n", v.Name)
	for _, col := range models.RequiredTripColumns {
		fmt.Fprintf(&b, "\t%s,\n", col)
	}
	fmt.Fprintf(&b, "\t%s AS trip_duration_minutes,\n", durationExpr)
	fmt.Fprintf(&b, "\tCASE WHEN %s <> 0 THEN trip_distance / (%s / 60.0) ELSE 0 END AS trip_speed_mph,\n", durationExpr, durationExpr)
	b.WriteString("\thour(tpep_pickup_datetime) AS pickup_hour,\n")
	b.WriteString("\tisodow(tpep_pickup_datetime) AS pickup_dow,\n")
	fmt.Fprintf(&b, "\t%s AS pickup_day_of_week\n", weekdayNameExpr("tpep_pickup_datetime"))
	fmt.Fprintf(&b, "FROM read_parquet(%s)\n", QuoteLiteral(path))
	fmt.Fprintf(&b, "WHERE %s", strings.Join(AdmissionPredicates, "\n  AND "))

	return b.String()
}

// weekdayNameExpr maps the ISO weekday of col to a fixed English name so the
// result does not depend on the engine's locale
func weekdayNameExpr(col string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CASE isodow(%s)", col)
	for _, d := range models.Weekdays() {
		fmt.Fprintf(&b, " WHEN %d THEN '%s'", int(d), d.String())
	}
	b.WriteString(" END")
	return b.String()
}

// DateBoundsSQL returns the first and last pickup date in the view
func (v TripView) DateBoundsSQL() string {
	return fmt.Sprintf(`SELECT
		MIN(CAST(tpep_pickup_datetime AS DATE)) AS min_date,
		MAX(CAST(tpep_pickup_datetime AS DATE)) AS max_date
		FROM %s`, v.Name)
}

// All returns the unfiltered view as a FilteredView
func (v TripView) All() FilteredView {
	return FilteredView{query: "SELECT * FROM " + v.Name}
}

// QuoteLiteral renders s as a SQL string literal. Table functions such as
// read_parquet take their path as a literal, not a bound parameter.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
