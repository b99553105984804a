// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package confirmation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/callcampaign/eligibility"
	"github.com/danielhkuo/callcampaign/metrics"
	"github.com/danielhkuo/callcampaign/models"
)

type fakeDirectory struct {
	districts []models.District
	err       error
}

func (f *fakeDirectory) Districts(ctx context.Context) ([]models.District, error) {
	return f.districts, f.err
}

type fakeStats struct {
	mu          sync.Mutex
	district    map[string]*models.CallStats
	overall     *models.CallStats
	districtErr error
	overallErr  error
	requested   []string
}

func (f *fakeStats) FetchDistrictStats(ctx context.Context, districtID string) (*models.CallStats, error) {
	f.mu.Lock()
	f.requested = append(f.requested, districtID)
	f.mu.Unlock()
	if f.districtErr != nil {
		return nil, f.districtErr
	}
	return f.district[districtID], nil
}

func (f *fakeStats) FetchOverallStats(ctx context.Context) (*models.CallStats, error) {
	if f.overallErr != nil {
		return nil, f.overallErr
	}
	return f.overall, nil
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{districts: []models.District{
		{ID: "101", State: "CA", Number: -1, Status: models.StatusActive},
		{ID: "102", State: "CA", Number: -2, Status: models.StatusActive},
		{ID: "112", State: "CA", Number: 12, Status: models.StatusActive},
		{ID: "105", State: "CA", Number: 5, Status: models.StatusActive},
	}}
}

func testStats() *fakeStats {
	return &fakeStats{
		district: map[string]*models.CallStats{
			"112": {CallsByMonth: map[string]int{"2024-01": 10, "2024-02": 0, "2024-03": 25}},
		},
		overall: &models.CallStats{CallsByMonth: map[string]int{"2024-03": 900, "2024-02": 400}},
	}
}

func newTestService(dir DirectorySource, stats StatsSource, now time.Time) *Service {
	svc := NewService(dir, stats)
	svc.now = func() time.Time { return now }
	return svc
}

func TestConfirm(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	stats := testStats()
	svc := newTestService(testDirectory(), stats, now)

	history := eligibility.CallHistory{"102": now.Add(-10 * time.Minute).UnixMilli()}
	result, err := svc.Confirm(context.Background(), Params{
		CalledState:        "ca",
		CalledNumber:       "12",
		HomeDistrictNumber: "5",
	}, history)
	require.NoError(t, err)

	assert.Equal(t, "112", result.District.ID)
	assert.Equal(t, []string{"112"}, stats.requested)

	require.Len(t, result.EligibleCallTargets, 3)
	assert.Equal(t, "101", result.EligibleCallTargets[0].ID)
	assert.False(t, result.EligibleCallTargets[0].AlreadyCalled)
	assert.Equal(t, "102", result.EligibleCallTargets[1].ID)
	assert.True(t, result.EligibleCallTargets[1].AlreadyCalled)
	assert.Equal(t, "105", result.EligibleCallTargets[2].ID)

	require.NoError(t, result.StatsErr)
	view := result.StatsView()
	require.NotNil(t, view)
	assert.Equal(t, models.ScopeDistrict, view.ActiveScope)
	assert.Equal(t, 35, view.Charts[models.ScopeDistrict].Total)
	assert.Equal(t, 1300, view.Charts[models.ScopeOverall].Total)
}

func TestConfirm_ScopeSelection(t *testing.T) {
	svc := newTestService(testDirectory(), testStats(), time.Now())

	result, err := svc.Confirm(context.Background(), Params{
		CalledState:  "CA",
		CalledNumber: "12",
		Scope:        models.ScopeOverall,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeOverall, result.Thermometer.Active())
	assert.Equal(t, 1300, result.Thermometer.Chart().Total)
}

func TestConfirm_MissingDistrictStatsFallsBackToOverall(t *testing.T) {
	svc := newTestService(testDirectory(), testStats(), time.Now())

	// No stats exist for the -1 line, so the overall chart is shown.
	result, err := svc.Confirm(context.Background(), Params{
		CalledState:  "CA",
		CalledNumber: "-1",
		Scope:        models.ScopeDistrict,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeOverall, result.Thermometer.Active())
}

func TestConfirm_UnresolvedDistrict(t *testing.T) {
	stats := testStats()
	svc := newTestService(testDirectory(), stats, time.Now())

	before := promtest.ToFloat64(metrics.ResolutionFailuresTotal)

	result, err := svc.Confirm(context.Background(), Params{CalledState: "TX", CalledNumber: "12"}, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, eligibility.ErrDistrictNotFound)

	var resErr *eligibility.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "TX", resErr.State)
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.ResolutionFailuresTotal)-before)
	assert.Empty(t, stats.requested, "stats must not be fetched for an unresolved district")
}

func TestConfirm_DirectoryError(t *testing.T) {
	boom := errors.New("directory down")
	svc := newTestService(&fakeDirectory{err: boom}, testStats(), time.Now())

	result, err := svc.Confirm(context.Background(), Params{CalledState: "CA", CalledNumber: "12"}, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestConfirm_StatsErrorKeepsEligibility(t *testing.T) {
	for name, stats := range map[string]*fakeStats{
		"district stats": {districtErr: errors.New("timeout"), overall: &models.CallStats{}},
		"overall stats":  {district: map[string]*models.CallStats{}, overallErr: errors.New("timeout")},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(testDirectory(), stats, time.Now())

			result, err := svc.Confirm(context.Background(), Params{
				CalledState:        "CA",
				CalledNumber:       "12",
				HomeDistrictNumber: "5",
			}, nil)
			require.NoError(t, err)
			assert.Error(t, result.StatsErr)
			assert.Nil(t, result.Thermometer)
			assert.Nil(t, result.StatsView())
			assert.Len(t, result.EligibleCallTargets, 3)
		})
	}
}

func TestConfirm_EmptyEligibility(t *testing.T) {
	dir := &fakeDirectory{districts: []models.District{
		{ID: "112", State: "CA", Number: 12, Status: models.StatusActive},
	}}
	svc := newTestService(dir, testStats(), time.Now())

	result, err := svc.Confirm(context.Background(), Params{CalledState: "CA", CalledNumber: "12", HomeDistrictNumber: "12"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.EligibleCallTargets)
	assert.Empty(t, result.EligibleCallTargets)
}
