package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/internal/query"
	"github.com/jengzang/taxi-dashboard/internal/repository"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
	"github.com/jengzang/taxi-dashboard/pkg/metrics"
)

// DashboardService runs recompute cycles: validate the selection, filter the
// trips view, count, then aggregate. Each call is independent; nothing is
// cached between cycles.
type DashboardService struct {
	tripRepo  *repository.TripRepository
	zoneRepo  *repository.ZoneRepository
	statsRepo *repository.StatsRepository
	log       logger.Logger
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	tripRepo *repository.TripRepository,
	zoneRepo *repository.ZoneRepository,
	statsRepo *repository.StatsRepository,
	log logger.Logger,
) *DashboardService {
	return &DashboardService{
		tripRepo:  tripRepo,
		zoneRepo:  zoneRepo,
		statsRepo: statsRepo,
		log:       log,
		now:       time.Now,
	}
}

// Bounds returns the values the filter sidebar starts from
func (s *DashboardService) Bounds(ctx context.Context) (*models.DashboardBounds, error) {
	bounds, err := s.tripRepo.DateBounds(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardBounds{
		MinDate:        bounds.MinDate.Format(models.DateLayout),
		MaxDate:        bounds.MaxDate.Format(models.DateLayout),
		HourStart:      0,
		HourEnd:        models.HoursPerDay - 1,
		PaymentOptions: models.PaymentOptions(),
		Zones:          s.zoneRepo.Len(),
	}, nil
}

// filter validates sel and returns the filtered view, or ErrEmptyResult when
// no trip matches. No aggregation runs on an empty view.
func (s *DashboardService) filter(ctx context.Context, sel models.FilterSelection) (query.FilteredView, error) {
	if err := sel.Validate(); err != nil {
		return query.FilteredView{}, err
	}

	view, err := query.ApplyFilters(s.tripRepo.View(), sel)
	if err != nil {
		return query.FilteredView{}, err
	}

	count, err := s.tripRepo.Count(ctx, view)
	if err != nil {
		return query.FilteredView{}, err
	}
	if count == 0 {
		return query.FilteredView{}, models.ErrEmptyResult
	}

	s.log.Debug(ctx, "selection matched trips", "trips", count)
	return view, nil
}

// finish records the cycle outcome and logs halts
func (s *DashboardService) finish(ctx context.Context, err error) {
	switch {
	case err == nil:
		metrics.RecordCycle(metrics.OutcomeOK)
	case models.IsValidationError(err):
		metrics.RecordCycle(metrics.OutcomeValidation)
		s.log.Info(ctx, "selection rejected", "reason", err.Error())
	case errors.Is(err, models.ErrEmptyResult):
		metrics.RecordCycle(metrics.OutcomeEmpty)
		s.log.Info(ctx, "selection matched no trips")
	default:
		metrics.RecordCycle(metrics.OutcomeError)
		s.log.Error(ctx, "recompute failed", err)
	}
}

// Recompute runs a full cycle and returns every dashboard result
func (s *DashboardService) Recompute(ctx context.Context, sel models.FilterSelection) (dash *models.Dashboard, err error) {
	ctx = logger.WithAction(ctx, "recompute")
	defer func() { s.finish(ctx, err) }()

	view, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}

	dash = &models.Dashboard{Selection: sel}

	summary, err := s.statsRepo.Summary(ctx, view)
	if err != nil {
		return nil, err
	}
	dash.Summary = *summary

	if dash.TopPickupZones, err = s.statsRepo.TopPickupZones(ctx, view); err != nil {
		return nil, err
	}
	if dash.HourlyFares, err = s.statsRepo.HourlyAverageFare(ctx, view); err != nil {
		return nil, err
	}
	if dash.DistanceHistogram, err = s.statsRepo.DistanceHistogram(ctx, view); err != nil {
		return nil, err
	}
	if dash.PaymentBreakdown, err = s.statsRepo.PaymentBreakdown(ctx, view); err != nil {
		return nil, err
	}

	heatmap, err := s.statsRepo.DayHourHeatmap(ctx, view)
	if err != nil {
		return nil, err
	}
	dash.Heatmap = *heatmap

	dash.GeneratedAt = s.now().Format(time.RFC3339)
	return dash, nil
}

// Aggregate runs a cycle computing only the named aggregation. The result is
// the same value the corresponding Dashboard field holds.
func (s *DashboardService) Aggregate(ctx context.Context, name string, sel models.FilterSelection) (result any, err error) {
	ctx = logger.WithLogCtx(ctx, logger.LogCtx{Action: "aggregate", Query: name})
	defer func() { s.finish(ctx, err) }()

	run, ok := s.aggregations()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownAggregation, name)
	}

	view, err := s.filter(ctx, sel)
	if err != nil {
		return nil, err
	}

	return run(ctx, view)
}

type aggregation func(context.Context, query.FilteredView) (any, error)

func (s *DashboardService) aggregations() map[string]aggregation {
	return map[string]aggregation{
		models.AggSummary: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.Summary(ctx, v)
		},
		models.AggTopZones: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.TopPickupZones(ctx, v)
		},
		models.AggHourlyFares: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.HourlyAverageFare(ctx, v)
		},
		models.AggDistanceHistogram: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.DistanceHistogram(ctx, v)
		},
		models.AggPaymentTypes: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.PaymentBreakdown(ctx, v)
		},
		models.AggHeatmap: func(ctx context.Context, v query.FilteredView) (any, error) {
			return s.statsRepo.DayHourHeatmap(ctx, v)
		},
	}
}
