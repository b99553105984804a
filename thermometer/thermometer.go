// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package thermometer

import (
	"errors"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/callcampaign/models"
)

// MinScaleCalls is the smallest value a chart is scaled against, so sparse
// months are not drawn as full bars.
const MinScaleCalls = 50

const (
	monthKeyLayout     = "2006-01"
	monthDisplayLayout = "January 2006"
)

// Palette colors, cycled from the most recent month.
const (
	SeaBlue        = "#05668D"
	Seaweed        = "#028090"
	PersianGreen   = "#00A896"
	CaribbeanGreen = "#02C39A"
)

var Palette = []string{
	CaribbeanGreen,
	Seaweed,
	CaribbeanGreen,
	PersianGreen,
	Seaweed,
	SeaBlue,
	PersianGreen,
	SeaBlue,
}

var ErrScopeUnavailable = errors.New("stats scope unavailable")

type month struct {
	key     string
	display string
	calls   int
}

// BuildSegments turns a calls-by-month mapping into chart segments, most
// recent month first. Total is the sum of every count. Zero months are not
// drawn; keys that are not YYYY-MM and negative counts are not drawn either
// and are listed in Skipped.
func BuildSegments(callsByMonth map[string]int) models.Chart {
	chart := models.Chart{
		Segments: []models.ChartSegment{},
		MaxCalls: MinScaleCalls,
	}

	months := make([]month, 0, len(callsByMonth))
	for key, calls := range callsByMonth {
		chart.Total += calls
		if calls < 0 {
			chart.Skipped = append(chart.Skipped, key)
			continue
		}

		t, err := time.Parse(monthKeyLayout, key)
		if err != nil {
			chart.Skipped = append(chart.Skipped, key)
			continue
		}
		chart.MaxCalls = max(chart.MaxCalls, calls)

		months = append(months, month{
			key:     key,
			display: t.Format(monthDisplayLayout),
			calls:   calls,
		})
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].key > months[j].key
	})
	sort.Strings(chart.Skipped)

	colorIndex := 0
	for _, m := range months {
		if m.calls == 0 {
			continue
		}

		chart.Segments = append(chart.Segments, models.ChartSegment{
			MonthKey:     m.key,
			MonthDisplay: m.display,
			NumCalls:     m.calls,
			Magnitude:    float64(m.calls) / float64(chart.MaxCalls),
			Color:        Palette[colorIndex],
		})
		colorIndex = (colorIndex + 1) % len(Palette)
	}

	chart.TotalDisplay = humanize.Comma(int64(chart.Total))
	return chart
}

// Thermometer holds the district and overall stats for one confirmation and
// tracks which of them is displayed.
type Thermometer struct {
	stats  map[string]*models.CallStats
	active string
	chart  models.Chart
}

// New creates a Thermometer showing the district stats, or the overall
// stats when the district has none.
func New(district, overall *models.CallStats) *Thermometer {
	th := &Thermometer{stats: make(map[string]*models.CallStats, 2)}
	if district != nil {
		th.stats[models.ScopeDistrict] = district
	}
	if overall != nil {
		th.stats[models.ScopeOverall] = overall
	}

	switch {
	case district != nil:
		th.active = models.ScopeDistrict
	case overall != nil:
		th.active = models.ScopeOverall
	}
	th.chart = th.build(th.active)
	return th
}

// Active returns the displayed scope, or "" when no stats were supplied.
func (th *Thermometer) Active() string {
	return th.active
}

// Chart returns the chart for the active scope.
func (th *Thermometer) Chart() models.Chart {
	return th.chart
}

// Toggle switches the active scope and rebuilds its chart. An unknown or
// missing scope leaves the current one in place.
func (th *Thermometer) Toggle(scope string) error {
	if _, ok := th.stats[scope]; !ok {
		return ErrScopeUnavailable
	}
	th.active = scope
	th.chart = th.build(scope)
	return nil
}

// Charts builds every available scope.
func (th *Thermometer) Charts() map[string]models.Chart {
	charts := make(map[string]models.Chart, len(th.stats))
	for scope := range th.stats {
		if scope == th.active {
			charts[scope] = th.chart
			continue
		}
		charts[scope] = th.build(scope)
	}
	return charts
}

// build charts one scope, adding months the source could not read to Skipped.
func (th *Thermometer) build(scope string) models.Chart {
	s, ok := th.stats[scope]
	if !ok || s == nil {
		return BuildSegments(nil)
	}

	chart := BuildSegments(s.CallsByMonth)
	if len(s.Malformed) > 0 {
		chart.Skipped = append(chart.Skipped, s.Malformed...)
		sort.Strings(chart.Skipped)
	}
	return chart
}
