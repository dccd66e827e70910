// Package render draws dashboard results as PNG charts.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// ErrNoChart is returned for results that have no chart form
var ErrNoChart = errors.New("no chart for this result")

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("nothing to plot")

// Teal used for every series
var seriesColor = drawing.ColorFromHex("2a9d8f")

const (
	chartHeight   = 480
	minChartWidth = 720
	headroom      = 1.15
)

// Charted lists the aggregation names Chart can draw
var Charted = []string{
	models.AggTopZones,
	models.AggHourlyFares,
	models.AggDistanceHistogram,
	models.AggPaymentTypes,
}

// Chart writes the PNG chart for the named aggregation result
func Chart(w io.Writer, name string, result any) error {
	switch v := result.(type) {
	case []models.ZoneCount:
		return TopZones(w, v)
	case []models.HourlyFare:
		return HourlyFares(w, v)
	case []models.DistanceBin:
		return DistanceHistogram(w, v)
	case []models.PaymentShare:
		return PaymentTypes(w, v)
	default:
		return fmt.Errorf("%w: %s", ErrNoChart, name)
	}
}

// TopZones draws the busiest pickup zones, busiest first
func TopZones(w io.Writer, zones []models.ZoneCount) error {
	bars := make([]chart.Value, len(zones))
	for i, z := range zones {
		bars[i] = chart.Value{Value: float64(z.TripCount), Label: z.Zone}
	}
	return barChart(w, "Top 10 Pickup Zones", "Trips", bars, 64, 16)
}

// DistanceHistogram draws trip counts per half-mile bucket. Only whole-mile
// buckets are labelled.
func DistanceHistogram(w io.Writer, bins []models.DistanceBin) error {
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		label := ""
		if b.BinStart == float64(int(b.BinStart)) && int(b.BinStart)%5 == 0 {
			label = strconv.Itoa(int(b.BinStart))
		}
		bars[i] = chart.Value{Value: float64(b.TripCount), Label: label}
	}
	return barChart(w, "Trip Distance Distribution (miles)", "Trips", bars, 10, 2)
}

// PaymentTypes draws trip counts per payment type
func PaymentTypes(w io.Writer, shares []models.PaymentShare) error {
	bars := make([]chart.Value, len(shares))
	for i, s := range shares {
		bars[i] = chart.Value{
			Value: float64(s.Total),
			Label: fmt.Sprintf("%s (%.2f%%)", s.Label, s.Percentage),
		}
	}
	return barChart(w, "Payment Type Breakdown", "Trips", bars, 96, 32)
}

func barChart(w io.Writer, title, yName string, bars []chart.Value, barWidth, barSpacing int) error {
	if len(bars) == 0 {
		return ErrNoData
	}

	var max float64
	for i := range bars {
		bars[i].Style = chart.Style{FillColor: seriesColor, StrokeColor: seriesColor, StrokeWidth: 1}
		if bars[i].Value > max {
			max = bars[i].Value
		}
	}

	width := len(bars)*(barWidth+barSpacing) + 160
	if width < minChartWidth {
		width = minChartWidth
	}

	c := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Name:           yName,
			Range:          &chart.ContinuousRange{Min: 0, Max: upper(max)},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return c.Render(chart.PNG, w)
}

// HourlyFares draws the average fare per pickup hour as a line
func HourlyFares(w io.Writer, fares []models.HourlyFare) error {
	if len(fares) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(fares))
	ys := make([]float64, len(fares))
	var max float64
	for i, f := range fares {
		xs[i] = float64(f.Hour)
		ys[i] = f.AvgFare
		if f.AvgFare > max {
			max = f.AvgFare
		}
	}

	ticks := make([]chart.Tick, 0, 8)
	for h := 0; h < models.HoursPerDay; h += 3 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: strconv.Itoa(h)})
	}

	c := chart.Chart{
		Title:      "Average Fare by Hour of Day",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      minChartWidth,
		Height:     chartHeight,
		XAxis: chart.XAxis{
			Name:  "Hour of day",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(models.HoursPerDay) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Average fare ($)",
			Range: &chart.ContinuousRange{Min: 0, Max: upper(max)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Average fare",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: 2,
					DotColor:    seriesColor,
					DotWidth:    4,
				},
			},
		},
	}
	return c.Render(chart.PNG, w)
}

// upper is the y-axis maximum leaving headroom above the tallest value
func upper(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * headroom
}
