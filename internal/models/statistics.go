package models

import "errors"

// SummaryMetrics represents the metric cards above the charts
type SummaryMetrics struct {
	TotalTrips         int64   `json:"total_trips"`
	AvgFare            float64 `json:"avg_fare"`             // 2 dp
	TotalRevenue       float64 `json:"total_revenue"`        // 2 dp, sum of total_amount
	AvgDistanceMiles   float64 `json:"avg_distance_miles"`   // 2 dp
	AvgDurationMinutes float64 `json:"avg_duration_minutes"` // 1 dp
}

// ZoneCount represents one bar of the busiest pickup zones chart
type ZoneCount struct {
	LocationID int    `json:"location_id" db:"location_id"`
	Zone       string `json:"zone" db:"zone"`
	Borough    string `json:"borough" db:"borough"`
	TripCount  int64  `json:"trip_count" db:"trip_count"`
}

// HourlyFare represents the average fare of one pickup hour
type HourlyFare struct {
	Hour    int     `json:"hour_of_day" db:"hour_of_day"`
	AvgFare float64 `json:"avg_fare" db:"avg_fare"` // 2 dp
}

// DistanceBin represents one 0.5 mile bucket of the distance histogram
type DistanceBin struct {
	BinStart  float64 `json:"bin_start" db:"bin_start"`
	TripCount int64   `json:"trip_count" db:"trip_count"`
}

// PaymentShare represents the trips paid with one payment type
type PaymentShare struct {
	PaymentType PaymentType `json:"payment_code" db:"payment_type"`
	Label       string      `json:"payment_type"`
	Total       int64       `json:"total" db:"total"`
	Percentage  float64     `json:"percentage"` // 2 dp
}

// Dashboard is the output of one recompute cycle
type Dashboard struct {
	Selection         FilterSelection `json:"selection"`
	Summary           SummaryMetrics  `json:"summary"`
	TopPickupZones    []ZoneCount     `json:"top_pickup_zones"`
	HourlyFares       []HourlyFare    `json:"hourly_fares"`
	DistanceHistogram []DistanceBin   `json:"distance_histogram"`
	PaymentBreakdown  []PaymentShare  `json:"payment_breakdown"`
	Heatmap           HeatmapGrid     `json:"heatmap"`
	GeneratedAt       string          `json:"generated_at"`
}

// Aggregation names, used for routes, charts, metrics and sheet names
const (
	AggSummary           = "summary"
	AggTopZones          = "top-zones"
	AggHourlyFares       = "hourly-fares"
	AggDistanceHistogram = "distance-histogram"
	AggPaymentTypes      = "payment-types"
	AggHeatmap           = "heatmap"
)

// Aggregations lists every aggregation name in dashboard order
var Aggregations = []string{
	AggSummary,
	AggTopZones,
	AggHourlyFares,
	AggDistanceHistogram,
	AggPaymentTypes,
	AggHeatmap,
}

// DashboardBounds seeds the filter sidebar
type DashboardBounds struct {
	MinDate        string          `json:"min_date"`
	MaxDate        string          `json:"max_date"`
	HourStart      int             `json:"hour_start"`
	HourEnd        int             `json:"hour_end"`
	PaymentOptions []PaymentOption `json:"payment_options"`
	Zones          int             `json:"zones"`
}

// ErrUnknownAggregation is returned for an aggregation name outside Aggregations
var ErrUnknownAggregation = errors.New("unknown aggregation")
