// Package chart turns raw financial series into year-ordered chart data
// and the derived headline figures (revenue CAGR, latest EBITDA margin).
package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/nmishin/deckforge/internal/model"
)

// chartMetrics are the series rendered as charts, in display order.
var chartMetrics = []string{"revenue", "ebitda", "pat", "pat_margin", "roce", "roe"}

// Build assembles chart series from the financials. Metrics with no
// usable data are dropped with a warning rather than failing the run.
func Build(financials map[string]map[int]float64) (model.ChartSet, []string) {
	var set model.ChartSet
	var warnings []string

	for _, metric := range chartMetrics {
		series, ok := financials[metric]
		if !ok || len(series) == 0 {
			continue
		}
		points := sortedPoints(series)
		if len(points) < 1 {
			warnings = append(warnings, fmt.Sprintf("metric %s has no data points, skipped", metric))
			continue
		}
		set.Series = append(set.Series, model.ChartSeries{Metric: metric, Points: points})
	}

	if cagr := CAGR(financials["revenue"]); cagr != nil {
		set.RevenueCAGR = cagr
	} else if len(financials["revenue"]) > 0 {
		warnings = append(warnings, "revenue CAGR needs at least two years of positive data")
	}

	if margin, year := LatestEBITDAMargin(financials); margin != nil {
		set.LatestMargin = margin
		set.MarginYear = year
	}

	return set, warnings
}

// CAGR computes the compound annual growth rate in percent between the
// earliest and latest year of a series. It returns nil when the series
// has fewer than two years or a non-positive starting value.
func CAGR(series map[int]float64) *float64 {
	if len(series) < 2 {
		return nil
	}
	years := sortedYears(series)
	first, last := series[years[0]], series[years[len(years)-1]]
	n := years[len(years)-1] - years[0]
	if first <= 0 || last <= 0 || n <= 0 {
		return nil
	}
	cagr := (math.Pow(last/first, 1/float64(n)) - 1) * 100
	return &cagr
}

// LatestEBITDAMargin computes EBITDA/revenue in percent for the latest
// year present in both series. Returns nil when no common year exists
// or revenue is non-positive.
func LatestEBITDAMargin(financials map[string]map[int]float64) (*float64, int) {
	revenue, ebitda := financials["revenue"], financials["ebitda"]
	if len(revenue) == 0 || len(ebitda) == 0 {
		return nil, 0
	}

	var common []int
	for year := range ebitda {
		if _, ok := revenue[year]; ok {
			common = append(common, year)
		}
	}
	if len(common) == 0 {
		return nil, 0
	}
	sort.Ints(common)
	year := common[len(common)-1]
	if revenue[year] <= 0 {
		return nil, 0
	}
	margin := ebitda[year] / revenue[year] * 100
	return &margin, year
}

func sortedYears(series map[int]float64) []int {
	years := make([]int, 0, len(series))
	for year := range series {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func sortedPoints(series map[int]float64) []model.ChartPoint {
	years := sortedYears(series)
	points := make([]model.ChartPoint, 0, len(years))
	for _, year := range years {
		points = append(points, model.ChartPoint{Year: year, Value: series[year]})
	}
	return points
}
