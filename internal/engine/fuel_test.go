package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okaradag/garagelog/internal/models"
)

func fillUp(date time.Time, mileage int64, gallons, totalCost float64) models.FuelEntry {
	return models.FuelEntry{
		Date:      date,
		Mileage:   mileage,
		Gallons:   gallons,
		TotalCost: totalCost,
		FuelType:  models.FuelRegular,
	}
}

// fillUps builds a fill-up series from per-interval mileage deltas, one week
// apart, at a fixed 10 gallons per stop. Each delta of 10*mpg miles yields
// one MPG sample of that value.
func fillUps(start time.Time, startMileage int64, deltas ...int64) []models.FuelEntry {
	entries := []models.FuelEntry{fillUp(start, startMileage, 10, 35)}
	mileage := startMileage
	for i, d := range deltas {
		mileage += d
		entries = append(entries, fillUp(start.AddDate(0, 0, 7*(i+1)), mileage, 10, 35))
	}
	return entries
}

func TestAnalyzeFuel_SingleInterval(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		fillUp(start, 1000, 10, 32),
		fillUp(start.AddDate(0, 0, 10), 1300, 10, 33),
	}

	got := AnalyzeFuel(entries)

	assert.Equal(t, 1, got.SampleCount)
	assert.InDelta(t, 30.0, got.AverageMPG, 0.001)
	assert.InDelta(t, 30.0, got.CurrentMPG, 0.001)
	assert.Equal(t, models.TrendStable, got.Trend)
	assert.Equal(t, 0.0, got.TrendRatio)
}

func TestAnalyzeFuel_FewerThanTwoEntries(t *testing.T) {
	zero := models.FuelEfficiencyAnalysis{Trend: models.TrendStable}

	assert.Equal(t, zero, AnalyzeFuel(nil))
	assert.Equal(t, zero, AnalyzeFuel([]models.FuelEntry{fillUp(time.Now(), 1000, 10, 35)}))
}

func TestAnalyzeFuel_BadIntervalsSkipped(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		fillUp(start, 1000, 10, 35),
		fillUp(start.AddDate(0, 0, 7), 990, 10, 35),   // odometer correction, negative miles
		fillUp(start.AddDate(0, 0, 14), 990, 10, 35),  // zero miles
		fillUp(start.AddDate(0, 0, 21), 1290, 0, 35),  // zero gallons
		fillUp(start.AddDate(0, 0, 28), 1590, 10, 35), // the only clean interval
	}

	got := AnalyzeFuel(entries)

	assert.Equal(t, 1, got.SampleCount)
	assert.InDelta(t, 30.0, got.AverageMPG, 0.001)
}

func TestAnalyzeFuel_CurrentMPGUsesLastThree(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// Samples 20, 20, 30, 30, 30: the last three average 30, all five 26.
	entries := fillUps(start, 10000, 200, 200, 300, 300, 300)

	got := AnalyzeFuel(entries)

	assert.Equal(t, 5, got.SampleCount)
	assert.InDelta(t, 26.0, got.AverageMPG, 0.001)
	assert.InDelta(t, 30.0, got.CurrentMPG, 0.001)
	// Five samples is under the trend minimum.
	assert.Equal(t, models.TrendStable, got.Trend)
}

func TestAnalyzeFuel_TrendImproving(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Samples 20, 20, 20, 30, 30, 30: second half up 50%.
	entries := fillUps(start, 10000, 200, 200, 200, 300, 300, 300)

	got := AnalyzeFuel(entries)

	assert.Equal(t, 6, got.SampleCount)
	assert.Equal(t, models.TrendImproving, got.Trend)
	assert.InDelta(t, 0.5, got.TrendRatio, 0.001)
}

func TestAnalyzeFuel_TrendDeclining(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Samples 30, 30, 30, 20, 20, 20: second half down a third.
	entries := fillUps(start, 10000, 300, 300, 300, 200, 200, 200)

	got := AnalyzeFuel(entries)

	assert.Equal(t, models.TrendDeclining, got.Trend)
	assert.InDelta(t, -1.0/3.0, got.TrendRatio, 0.001)
}

func TestAnalyzeFuel_TrendWithinBandIsStable(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Samples 30, 30, 30, 31, 31, 31: a 3.3% change sits inside the band.
	entries := fillUps(start, 10000, 300, 300, 300, 310, 310, 310)

	got := AnalyzeFuel(entries)

	assert.Equal(t, models.TrendStable, got.Trend)
	assert.InDelta(t, 1.0/30.0, got.TrendRatio, 0.001)
}

func TestAnalyzeFuel_CostPerMileAndProjection(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		fillUp(start, 1000, 10, 60),
		fillUp(start.AddDate(0, 0, 30), 1600, 10, 60),
	}

	got := AnalyzeFuel(entries)

	// 120 dollars over a 600-mile span and a 30-day span.
	assert.InDelta(t, 0.2, got.CostPerMile, 0.001)
	assert.InDelta(t, 120.0, got.ProjectedMonthlyCost, 0.001)
}

func TestAnalyzeFuel_SortsByDateNotInputOrder(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		fillUp(start.AddDate(0, 0, 10), 1300, 10, 35),
		fillUp(start, 1000, 10, 35),
	}

	got := AnalyzeFuel(entries)

	assert.Equal(t, 1, got.SampleCount)
	assert.InDelta(t, 30.0, got.AverageMPG, 0.001)
	// Input slice order is untouched.
	assert.Equal(t, int64(1300), entries[0].Mileage)
}
