package models

// HeatmapCell is one sparse (weekday, hour) count as returned by the engine
type HeatmapCell struct {
	DayOfWeek int   `db:"pickup_dow"` // ISO weekday
	Hour      int   `db:"pickup_hour"`
	TripCount int64 `db:"trip_count"`
}

// HeatmapGrid is the dense trip volume grid: one row per day Monday..Sunday,
// one column per hour 0..23
type HeatmapGrid struct {
	Days   []string  `json:"days"`
	Hours  []int     `json:"hours"`
	Counts [][]int64 `json:"counts"`
	Max    int64     `json:"max"`
}

// NewHeatmapGrid returns a zero-filled 7x24 grid
func NewHeatmapGrid() HeatmapGrid {
	hours := make([]int, HoursPerDay)
	for h := range hours {
		hours[h] = h
	}

	counts := make([][]int64, DaysPerWeek)
	for d := range counts {
		counts[d] = make([]int64, HoursPerDay)
	}

	return HeatmapGrid{
		Days:   WeekdayNames(),
		Hours:  hours,
		Counts: counts,
	}
}

// DensifyHeatmap places sparse cells into a full grid. Cells outside the grid
// are ignored.
func DensifyHeatmap(cells []HeatmapCell) HeatmapGrid {
	grid := NewHeatmapGrid()
	for _, c := range cells {
		day := Weekday(c.DayOfWeek)
		if !day.Valid() || c.Hour < 0 || c.Hour >= HoursPerDay {
			continue
		}
		grid.Counts[day.Index()][c.Hour] += c.TripCount
		if v := grid.Counts[day.Index()][c.Hour]; v > grid.Max {
			grid.Max = v
		}
	}
	return grid
}

// Cell returns the count for day and hour
func (g HeatmapGrid) Cell(day Weekday, hour int) int64 {
	if !day.Valid() || hour < 0 || hour >= HoursPerDay {
		return 0
	}
	return g.Counts[day.Index()][hour]
}
