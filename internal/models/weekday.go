package models

// Weekday is an ISO-8601 day of week, 1 = Monday .. 7 = Sunday
type Weekday int

// ISO weekdays
const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek and HoursPerDay size the heatmap grid
const (
	DaysPerWeek = 7
	HoursPerDay = 24
)

var weekdayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Weekdays returns Monday..Sunday
func Weekdays() []Weekday {
	days := make([]Weekday, 0, DaysPerWeek)
	for d := Monday; d <= Sunday; d++ {
		days = append(days, d)
	}
	return days
}

// Valid reports whether d is within Monday..Sunday
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Index returns the zero-based row of d in a Monday-first grid
func (d Weekday) Index() int {
	return int(d) - 1
}

// String returns the English day name, independent of locale
func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d.Index()]
}

// WeekdayNames returns the day names Monday..Sunday
func WeekdayNames() []string {
	names := make([]string, DaysPerWeek)
	copy(names, weekdayNames[:])
	return names
}
