// Package export writes dashboard results in presentation formats: metric
// cards and an XLSX workbook with one sheet per result.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// Sheet names in workbook order
const (
	SheetSummary   = "Summary"
	SheetTopZones  = "Top Zones"
	SheetHourly    = "Hourly Fares"
	SheetHistogram = "Distance Histogram"
	SheetPayments  = "Payment Types"
	SheetHeatmap   = "Heatmap"
)

// Workbook builds the workbook for one dashboard. The caller closes it.
func Workbook(dash *models.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetSummary, []string{"Metric", "Value"}, summaryRows(dash)},
		{SheetTopZones, []string{"Location ID", "Zone", "Borough", "Trips"}, zoneRows(dash.TopPickupZones)},
		{SheetHourly, []string{"Hour", "Average Fare"}, hourlyRows(dash.HourlyFares)},
		{SheetHistogram, []string{"Distance From (mi)", "Trips"}, histogramRows(dash.DistanceHistogram)},
		{SheetPayments, []string{"Code", "Payment Type", "Trips", "Percentage"}, paymentRows(dash.PaymentBreakdown)},
		{SheetHeatmap, heatmapHeader(), heatmapRows(dash.Heatmap)},
	}

	for _, s := range sheets {
		if s.name != SheetSummary {
			if _, err := f.NewSheet(s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
			}
		}
		if err := writeTable(f, s.name, s.header, s.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Write streams the workbook for dash to w
func Write(w io.Writer, dash *models.Dashboard) error {
	f, err := Workbook(dash)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook for dash to path
func Save(path string, dash *models.Dashboard) error {
	f, err := Workbook(dash)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for i, name := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}

	for rowIdx, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowIdx+1, err)
		}
	}
	return nil
}

func summaryRows(dash *models.Dashboard) [][]any {
	sel := dash.Selection
	rows := [][]any{
		{"Start Date", sel.StartDay()},
		{"End Date", sel.EndDay()},
		{"Hours", fmt.Sprintf("%d-%d", sel.HourStart, sel.HourEnd)},
		{"Payment Types", paymentLabels(sel.PaymentTypes)},
	}
	for _, c := range Cards(dash.Summary) {
		rows = append(rows, []any{c.Label, c.Value})
	}
	if dash.GeneratedAt != "" {
		rows = append(rows, []any{"Generated At", dash.GeneratedAt})
	}
	return rows
}

func paymentLabels(types []models.PaymentType) string {
	labels := make([]string, len(types))
	for i, p := range types {
		labels[i] = p.Label()
	}
	return strings.Join(labels, ", ")
}

func zoneRows(zones []models.ZoneCount) [][]any {
	rows := make([][]any, len(zones))
	for i, z := range zones {
		rows[i] = []any{z.LocationID, z.Zone, z.Borough, z.TripCount}
	}
	return rows
}

func hourlyRows(fares []models.HourlyFare) [][]any {
	rows := make([][]any, len(fares))
	for i, h := range fares {
		rows[i] = []any{h.Hour, h.AvgFare}
	}
	return rows
}

func histogramRows(bins []models.DistanceBin) [][]any {
	rows := make([][]any, len(bins))
	for i, b := range bins {
		rows[i] = []any{b.BinStart, b.TripCount}
	}
	return rows
}

func paymentRows(shares []models.PaymentShare) [][]any {
	rows := make([][]any, len(shares))
	for i, s := range shares {
		rows[i] = []any{int(s.PaymentType), s.Label, s.Total, s.Percentage}
	}
	return rows
}

func heatmapHeader() []string {
	header := make([]string, 0, models.HoursPerDay+1)
	header = append(header, "Day")
	for h := 0; h < models.HoursPerDay; h++ {
		header = append(header, fmt.Sprintf("%02d", h))
	}
	return header
}

func heatmapRows(grid models.HeatmapGrid) [][]any {
	rows := make([][]any, len(grid.Counts))
	for d, counts := range grid.Counts {
		row := make([]any, 0, len(counts)+1)
		row = append(row, grid.Days[d])
		for _, c := range counts {
			row = append(row, c)
		}
		rows[d] = row
	}
	return rows
}
