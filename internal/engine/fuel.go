package engine

import (
	"sort"

	"github.com/okaradag/garagelog/internal/models"
)

const (
	// minTrendSamples is how many usable MPG intervals a trend call needs;
	// below it the trend reads stable unconditionally.
	minTrendSamples = 6
	// trendBand is the fractional change the half-to-half comparison must
	// clear before the trend leaves stable.
	trendBand = 0.05
	// currentMPGWindow is how many of the latest intervals feed CurrentMPG.
	currentMPGWindow = 3
)

// AnalyzeFuel derives MPG statistics and a consumption trend from fill-up
// history. Fewer than two entries computes nothing and returns a zero result
// with a stable trend.
func AnalyzeFuel(entries []models.FuelEntry) models.FuelEfficiencyAnalysis {
	analysis := models.FuelEfficiencyAnalysis{Trend: models.TrendStable}
	if len(entries) < 2 {
		return analysis
	}

	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var samples []float64
	for i := 1; i < len(sorted); i++ {
		miles := sorted[i].Mileage - sorted[i-1].Mileage
		gallons := sorted[i].Gallons
		if miles <= 0 || gallons <= 0 {
			// Odometer corrections and bad volumes make nonsense intervals;
			// they are skipped entirely, never counted as zero MPG.
			continue
		}
		samples = append(samples, float64(miles)/gallons)
	}

	analysis.SampleCount = len(samples)
	if len(samples) > 0 {
		analysis.AverageMPG = mean(samples)
		start := len(samples) - currentMPGWindow
		if start < 0 {
			start = 0
		}
		analysis.CurrentMPG = mean(samples[start:])
		analysis.Trend, analysis.TrendRatio = classifyTrend(samples)
	}

	var totalCost float64
	for _, e := range sorted {
		totalCost += e.TotalCost
	}
	if span := sorted[len(sorted)-1].Mileage - sorted[0].Mileage; span > 0 {
		analysis.CostPerMile = totalCost / float64(span)
	}
	analysis.ProjectedMonthlyCost = totalCost / daySpan(sorted[0].Date, sorted[len(sorted)-1].Date) * 30

	return analysis
}

// classifyTrend splits the MPG series in half by count and compares means.
// The ratio is the fractional change of the second half against the first;
// anything within the ±5% band reads stable.
func classifyTrend(samples []float64) (models.FuelTrend, float64) {
	if len(samples) < minTrendSamples {
		return models.TrendStable, 0
	}

	half := len(samples) / 2
	firstMean := mean(samples[:half])
	secondMean := mean(samples[half:])
	if firstMean == 0 {
		return models.TrendStable, 0
	}

	ratio := (secondMean - firstMean) / firstMean
	switch {
	case ratio > trendBand:
		return models.TrendImproving, ratio
	case ratio < -trendBand:
		return models.TrendDeclining, ratio
	default:
		return models.TrendStable, ratio
	}
}
