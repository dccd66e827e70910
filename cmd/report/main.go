// Command report runs one dashboard cycle from the command line, prints the
// metric cards and optionally saves the workbook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jengzang/taxi-dashboard/internal/app"
	"github.com/jengzang/taxi-dashboard/internal/config"
	"github.com/jengzang/taxi-dashboard/internal/export"
	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	start      = flag.String("start", "", "first pickup date, YYYY-MM-DD (defaults to the first date in the data)")
	end        = flag.String("end", "", "last pickup date, YYYY-MM-DD (defaults to the last date in the data)")
	hours      = flag.String("hours", "0-23", "pickup hour range, e.g. 7-19")
	payments   = flag.String("payments", "1,2,3,4,5", "comma separated payment type codes")
	out        = flag.String("out", "", "write the XLSX workbook to this path")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if err := run(ctx); err != nil {
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Fprintln(os.Stderr, verr.Message)
		case errors.Is(err, models.ErrEmptyResult):
			fmt.Fprintln(os.Stderr, models.EmptyResultMessage)
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, "taxi-dashboard-report", cfg.Log.Level)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sel, err := selection(ctx, a)
	if err != nil {
		return err
	}

	dash, err := a.Dashboard.Recompute(ctx, sel)
	if err != nil {
		return err
	}

	printDashboard(dash)

	if *out != "" {
		if err := export.Save(*out, dash); err != nil {
			return err
		}
		fmt.Printf("\nWorkbook saved to %s\n", *out)
	}
	return nil
}

// selection builds the filter selection from the flags, seeding absent dates
// from the data
func selection(ctx context.Context, a *app.App) (models.FilterSelection, error) {
	startDate, endDate, err := parseDates(*start, *end)
	if err != nil {
		return models.FilterSelection{}, err
	}
	if startDate.IsZero() || endDate.IsZero() {
		bounds, err := a.Trips.DateBounds(ctx)
		if err != nil {
			return models.FilterSelection{}, err
		}
		if startDate.IsZero() {
			startDate = bounds.MinDate
		}
		if endDate.IsZero() {
			endDate = bounds.MaxDate
		}
	}

	hourStart, hourEnd, err := parseHours(*hours)
	if err != nil {
		return models.FilterSelection{}, err
	}

	var codes []models.PaymentType
	for _, s := range strings.Split(*payments, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return models.FilterSelection{}, models.NewValidationError("payments", models.MsgPaymentCode)
		}
		p, err := models.ParsePaymentType(n)
		if err != nil {
			return models.FilterSelection{}, models.NewValidationError("payments", models.MsgPaymentCode)
		}
		codes = append(codes, p)
	}

	return models.NewFilterSelection(startDate, endDate, hourStart, hourEnd, codes...), nil
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	var dates [2]time.Time
	for i, s := range []string{start, end} {
		if s == "" {
			continue
		}
		t, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, models.NewValidationError("start,end", models.MsgSelectDateRange)
		}
		dates[i] = t
	}
	return dates[0], dates[1], nil
}

func parseHours(s string) (int, int, error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, models.NewValidationError("hours", models.MsgHourRange)
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(lo))
	end, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil {
		return 0, 0, models.NewValidationError("hours", models.MsgHourRange)
	}
	return start, end, nil
}

func printDashboard(dash *models.Dashboard) {
	sel := dash.Selection
	fmt.Printf("NYC Yellow Taxi, %s to %s, hours %d-%d\n\n", sel.StartDay(), sel.EndDay(), sel.HourStart, sel.HourEnd)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range export.Cards(dash.Summary) {
		fmt.Fprintf(w, "%s\t%s\n", c.Label, c.Value)
	}
	w.Flush()

	fmt.Println("\nTop pickup zones")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, z := range dash.TopPickupZones {
		fmt.Fprintf(w, "%2d.\t%s\t%s\t%d\n", i+1, z.Zone, z.Borough, z.TripCount)
	}
	w.Flush()

	fmt.Println("\nPayment types")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range dash.PaymentBreakdown {
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", p.Label, p.Total, p.Percentage)
	}
	w.Flush()
}
