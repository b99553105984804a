// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package confirmation assembles the post-call confirmation screen.
package confirmation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/callcampaign/eligibility"
	"github.com/danielhkuo/callcampaign/metrics"
	"github.com/danielhkuo/callcampaign/models"
	"github.com/danielhkuo/callcampaign/thermometer"
)

type DirectorySource interface {
	Districts(ctx context.Context) ([]models.District, error)
}

type StatsSource interface {
	FetchDistrictStats(ctx context.Context, districtID string) (*models.CallStats, error)
	FetchOverallStats(ctx context.Context) (*models.CallStats, error)
}

// Params are the thank-you page query parameters.
type Params struct {
	CalledState        string
	CalledNumber       string
	HomeDistrictNumber string
	TrackingToken      string
	CallerID           string
	Scope              string
}

// Result is a resolved confirmation. Eligibility and stats fail independently:
// when StatsErr is set Thermometer is nil and EligibleCallTargets is still
// populated.
type Result struct {
	District            models.District
	EligibleCallTargets []models.EligibilityCandidate
	Thermometer         *thermometer.Thermometer
	StatsErr            error
}

type Service struct {
	directory DirectorySource
	stats     StatsSource
	now       func() time.Time
}

func NewService(directory DirectorySource, stats StatsSource) *Service {
	return &Service{directory: directory, stats: stats, now: time.Now}
}

// Confirm resolves the called district, recommends the next districts to call
// and loads both stats scopes. It fails only when the directory cannot be
// fetched or does not contain the called district.
func (s *Service) Confirm(ctx context.Context, p Params, history eligibility.CallHistory) (*Result, error) {
	p.CalledState = strings.ToUpper(strings.TrimSpace(p.CalledState))

	districts, err := s.directory.Districts(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := eligibility.ComputeEligibleTargets(eligibility.Request{
		HomeDistrictNumber: p.HomeDistrictNumber,
		CalledState:        p.CalledState,
		CalledNumber:       p.CalledNumber,
	}, districts, history, s.now())
	if err != nil {
		if errors.Is(err, eligibility.ErrDistrictNotFound) {
			metrics.ResolutionFailuresTotal.Inc()
		}
		return nil, err
	}
	recordTargets(targets)

	// ComputeEligibleTargets already resolved the called district
	called, _ := eligibility.FindDistrictByStateNumber(p.CalledState, p.CalledNumber, districts)

	// Stats are keyed by the resolved district, so they start only now.
	var districtStats, overallStats *models.CallStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		districtStats, err = s.stats.FetchDistrictStats(gctx, called.ID)
		return err
	})
	g.Go(func() error {
		var err error
		overallStats, err = s.stats.FetchOverallStats(gctx)
		return err
	})

	result := &Result{
		District:            called,
		EligibleCallTargets: targets,
	}

	if err := g.Wait(); err != nil {
		slog.Error("failed to fetch call stats", "district_id", called.ID, "error", err)
		result.StatsErr = err
		return result, nil
	}

	th := thermometer.New(districtStats, overallStats)
	if p.Scope != "" && p.Scope != th.Active() {
		if err := th.Toggle(p.Scope); err != nil {
			slog.Warn("stats scope unavailable", "scope", p.Scope, "active", th.Active())
		}
	}
	result.Thermometer = th

	return result, nil
}

func recordTargets(targets []models.EligibilityCandidate) {
	metrics.EligibleTargets.Observe(float64(len(targets)))
	for _, t := range targets {
		if t.AlreadyCalled {
			metrics.AlreadyCalledTargetsTotal.Inc()
		}
	}
}

// StatsView builds the response view for r, counting skipped months.
func (r *Result) StatsView() *models.StatsView {
	if r.Thermometer == nil {
		return nil
	}

	charts := r.Thermometer.Charts()
	for scope, chart := range charts {
		if len(chart.Skipped) > 0 {
			slog.Warn("skipped malformed stats months", "scope", scope, "months", chart.Skipped)
			metrics.MalformedRecordsTotal.WithLabelValues("month").Add(float64(len(chart.Skipped)))
		}
	}

	return &models.StatsView{
		ActiveScope: r.Thermometer.Active(),
		Charts:      charts,
	}
}
