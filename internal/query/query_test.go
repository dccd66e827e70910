package query

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

func TestTripView_CreateSQL(t *testing.T) {
	sql := NewTripView().CreateSQL("/data/raw/yellow_tripdata_2024-01.parquet")

	for _, want := range []string{
		"CREATE OR REPLACE VIEW trips AS",
		"read_parquet('/data/raw/yellow_tripdata_2024-01.parquet')",
		"AS trip_duration_minutes",
		"ELSE 0 END AS trip_speed_mph",
		"hour(tpep_pickup_datetime) AS pickup_hour",
		"WHEN 1 THEN 'Monday'",
		"WHEN 7 THEN 'Sunday'",
		"fare_amount <= 500.0",
		"tpep_dropoff_datetime >= tpep_pickup_datetime",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("view SQL missing %q:\n%s", want, sql)
		}
	}

	for _, col := range models.RequiredTripColumns {
		if !strings.Contains(sql, col) {
			t.Errorf("view SQL does not project %s", col)
		}
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := QuoteLiteral("it's.parquet"); got != "'it''s.parquet'" {
		t.Fatalf("QuoteLiteral = %s", got)
	}
}

func TestApplyFilters(t *testing.T) {
	sel := models.NewFilterSelection(
		time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		7, 19,
		models.PaymentCash, models.PaymentCreditCard, models.PaymentCash,
	)

	view, err := ApplyFilters(NewTripView(), sel)
	if err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}

	if !strings.Contains(view.SQL(), "payment_type IN (?, ?)") {
		t.Errorf("payment list not expanded: %s", view.SQL())
	}
	if !strings.Contains(view.SQL(), "FROM trips") {
		t.Errorf("filtered view does not read trips: %s", view.SQL())
	}

	want := []any{"2024-01-03", "2024-01-09", 7, 19, 1, 2}
	if got := view.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args = %#v, want %#v", got, want)
	}
}

func TestApplyFilters_EmptyPaymentSet(t *testing.T) {
	sel := models.NewFilterSelection(time.Now(), time.Now(), 0, 23)
	if _, err := ApplyFilters(NewTripView(), sel); err == nil {
		t.Fatal("expected an error for an empty payment set")
	}
}

func TestFilteredView_Composition(t *testing.T) {
	base := NewTripView().All()
	narrowed := base.Where("trip_distance <= ?", 30.0)

	if !strings.HasPrefix(narrowed.SQL(), "SELECT * FROM (SELECT * FROM trips) AS w WHERE") {
		t.Errorf("unexpected composition: %s", narrowed.SQL())
	}
	if got := narrowed.Args(); len(got) != 1 || got[0] != 30.0 {
		t.Errorf("args = %v", got)
	}
	if len(base.Args()) != 0 {
		t.Error("Where must not mutate the receiver")
	}
	if !strings.HasPrefix(narrowed.CountSQL(), "SELECT COUNT(*) FROM (") {
		t.Errorf("unexpected count SQL: %s", narrowed.CountSQL())
	}
}
