// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package thermometer renders monthly call counts as a stacked bar chart.

	chart := thermometer.BuildSegments(stats.CallsByMonth)

Months are drawn newest first. Each segment's Magnitude is its share of
MaxCalls, the busiest month or MinScaleCalls if that is larger, so a quiet
district shows short bars. Colors cycle through Palette.

A Thermometer holds the district and campaign-wide charts and tracks which
one is shown:

	th := thermometer.New(districtStats, overallStats)
	err := th.Toggle(models.ScopeOverall)
*/
package thermometer
