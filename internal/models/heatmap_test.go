package models

import "testing"

func TestDensifyHeatmap(t *testing.T) {
	grid := DensifyHeatmap([]HeatmapCell{
		{DayOfWeek: 1, Hour: 0, TripCount: 4},
		{DayOfWeek: 7, Hour: 23, TripCount: 9},
		{DayOfWeek: 3, Hour: 12, TripCount: 2},
		{DayOfWeek: 0, Hour: 5, TripCount: 100},  // outside the grid
		{DayOfWeek: 2, Hour: 24, TripCount: 100}, // outside the grid
	})

	if len(grid.Days) != DaysPerWeek || len(grid.Hours) != HoursPerDay {
		t.Fatalf("grid axes = %d days, %d hours", len(grid.Days), len(grid.Hours))
	}

	var total int64
	for _, row := range grid.Counts {
		if len(row) != HoursPerDay {
			t.Fatalf("row has %d hours", len(row))
		}
		for _, c := range row {
			total += c
		}
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}

	if grid.Cell(Monday, 0) != 4 || grid.Cell(Sunday, 23) != 9 || grid.Cell(Wednesday, 12) != 2 {
		t.Errorf("cells = %d %d %d", grid.Cell(Monday, 0), grid.Cell(Sunday, 23), grid.Cell(Wednesday, 12))
	}
	if grid.Cell(Tuesday, 5) != 0 || grid.Cell(Weekday(8), 0) != 0 {
		t.Error("missing cells should read as zero")
	}
	if grid.Max != 9 {
		t.Errorf("max = %d, want 9", grid.Max)
	}
	if grid.Days[0] != "Monday" || grid.Days[6] != "Sunday" {
		t.Errorf("days = %v", grid.Days)
	}
}

func TestDensifyHeatmap_Empty(t *testing.T) {
	grid := DensifyHeatmap(nil)
	if grid.Max != 0 || len(grid.Counts) != DaysPerWeek {
		t.Errorf("empty grid = %+v", grid)
	}
}
