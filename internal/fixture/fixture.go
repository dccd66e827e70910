// Package fixture builds small trip and zone files for engine-backed tests.
package fixture

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/database"
	"github.com/jengzang/taxi-dashboard/internal/query"
)

// Zones is a zone lookup CSV covering the location ids tests use
const Zones = `LocationID,Borough,Zone,service_zone
1,EWR,Newark Airport,EWR
2,Queens,Jamaica Bay,Boro Zone
3,Bronx,Allerton/Pelham Gardens,Boro Zone
4,Manhattan,Alphabet City,Yellow Zone
132,Queens,JFK Airport,Airports
161,Manhattan,Midtown Center,Yellow Zone
`

// TripRow is one raw trip written to a Parquet fixture
type TripRow struct {
	Pickup   string
	Dropoff  string
	PU, DO   int
	Distance float64
	Fare     float64
	Total    float64
	Payment  int
}

// Tuple renders the row as a SQL VALUES tuple
func (r TripRow) Tuple() string {
	return fmt.Sprintf("('%s', '%s', %d, %d, %g, %g, %g, %d)",
		r.Pickup, r.Dropoff, r.PU, r.DO, r.Distance, r.Fare, r.Total, r.Payment)
}

// Trip returns a valid trip picked up at pickup ("2006-01-02 15:04:05")
// lasting minutes, ending where it started
func Trip(pickup string, minutes int, pu int, distance, fare float64, payment int) TripRow {
	p, err := time.Parse(timestampLayout, pickup)
	if err != nil {
		panic(err)
	}
	return TripRow{
		Pickup:   pickup,
		Dropoff:  p.Add(time.Duration(minutes) * time.Minute).Format(timestampLayout),
		PU:       pu,
		DO:       pu,
		Distance: distance,
		Fare:     fare,
		Total:    fare + 2.5,
		Payment:  payment,
	}
}

const timestampLayout = "2006-01-02 15:04:05"

const tripSelect = `SELECT
	CAST(c1 AS TIMESTAMP) AS tpep_pickup_datetime,
	CAST(c2 AS TIMESTAMP) AS tpep_dropoff_datetime,
	CAST(c3 AS INTEGER) AS PULocationID,
	CAST(c4 AS INTEGER) AS DOLocationID,
	CAST(c5 AS DOUBLE) AS trip_distance,
	CAST(c6 AS DOUBLE) AS fare_amount,
	CAST(c7 AS DOUBLE) AS total_amount,
	CAST(c8 AS BIGINT) AS payment_type
	FROM (VALUES %s) AS t(c1, c2, c3, c4, c5, c6, c7, c8)`

// OpenDB opens an in-memory engine closed when the test ends
func OpenDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{})
	if err != nil {
		t.Fatalf("failed to open engine: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// WriteTrips writes rows to a Parquet file at path
func WriteTrips(t testing.TB, db *sqlx.DB, path string, rows ...TripRow) {
	t.Helper()
	tuples := make([]string, len(rows))
	for i, r := range rows {
		tuples[i] = r.Tuple()
	}
	WriteTuples(t, db, path, tuples)
}

// WriteTuples writes pre-rendered VALUES tuples to a Parquet file at path.
// Tuples may hold NULLs or otherwise invalid trips.
func WriteTuples(t testing.TB, db *sqlx.DB, path string, tuples []string) {
	t.Helper()
	stmt := fmt.Sprintf("COPY (%s) TO %s (FORMAT PARQUET)",
		fmt.Sprintf(tripSelect, strings.Join(tuples, ",\n")), query.QuoteLiteral(path))
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("failed to write parquet fixture: %v", err)
	}
}

// WriteFile writes content to path
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
