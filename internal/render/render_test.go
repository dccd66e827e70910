package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestChart_RendersPNG(t *testing.T) {
	tests := []struct {
		name   string
		result any
	}{
		{models.AggTopZones, []models.ZoneCount{
			{LocationID: 161, Zone: "Midtown Center", Borough: "Manhattan", TripCount: 120},
			{LocationID: 237, Zone: "Upper East Side South", Borough: "Manhattan", TripCount: 95},
		}},
		{models.AggHourlyFares, []models.HourlyFare{{Hour: 0, AvgFare: 19.5}, {Hour: 5, AvgFare: 24.1}, {Hour: 17, AvgFare: 18.2}}},
		{models.AggHourlyFares, []models.HourlyFare{{Hour: 9, AvgFare: 12}}},
		{models.AggDistanceHistogram, []models.DistanceBin{{BinStart: 0, TripCount: 3}, {BinStart: 0.5, TripCount: 9}, {BinStart: 5, TripCount: 1}}},
		{models.AggPaymentTypes, []models.PaymentShare{
			{PaymentType: models.PaymentCash, Label: "Cash", Total: 10, Percentage: 25},
			{PaymentType: models.PaymentCreditCard, Label: "Credit Card", Total: 30, Percentage: 75},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Chart(&buf, tt.name, tt.result); err != nil {
				t.Fatalf("Chart: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Error("output is not a PNG")
			}
		})
	}
}

func TestChart_Errors(t *testing.T) {
	var buf bytes.Buffer

	if err := Chart(&buf, models.AggSummary, &models.SummaryMetrics{}); !errors.Is(err, ErrNoChart) {
		t.Errorf("summary chart error = %v, want ErrNoChart", err)
	}
	if err := Chart(&buf, models.AggTopZones, []models.ZoneCount{}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty chart error = %v, want ErrNoData", err)
	}
	if err := HourlyFares(&buf, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("empty line chart error = %v, want ErrNoData", err)
	}
}

func TestUpper(t *testing.T) {
	if got := upper(0); got != 1 {
		t.Errorf("upper(0) = %v, want 1", got)
	}
	if got := upper(100); got <= 100 || got > 116 {
		t.Errorf("upper(100) = %v, want headroom above 100", got)
	}
}
