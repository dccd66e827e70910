package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// Card is one formatted metric card
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var printer = message.NewPrinter(language.English)

// Cards formats the summary metrics for display: 1,234 trips, $1,234.56,
// 2.35 mi, 12.3 min
func Cards(s models.SummaryMetrics) []Card {
	return []Card{
		{Label: "Total Trips", Value: printer.Sprintf("%d", s.TotalTrips)},
		{Label: "Average Fare", Value: printer.Sprintf("$%.2f", s.AvgFare)},
		{Label: "Total Revenue", Value: printer.Sprintf("$%.2f", s.TotalRevenue)},
		{Label: "Average Distance", Value: printer.Sprintf("%.2f mi", s.AvgDistanceMiles)},
		{Label: "Average Duration", Value: printer.Sprintf("%.1f min", s.AvgDurationMinutes)},
	}
}
