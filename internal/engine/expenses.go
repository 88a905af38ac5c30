package engine

import (
	"sort"
	"time"

	"github.com/okaradag/garagelog/internal/models"
)

// AnalyzeExpenses aggregates a vehicle's expenses by category and calendar
// month and derives cost per mile and a projected annual spend.
func AnalyzeExpenses(expenses []models.Expense, vehicle models.Vehicle, now time.Time) models.ExpenseAnalysis {
	analysis := models.ExpenseAnalysis{
		TotalByCategory: map[models.ExpenseCategory]float64{},
		MonthlyTrends:   []models.MonthlyTotal{},
	}

	monthly := map[string]*models.MonthlyTotal{}
	for _, e := range expenses {
		analysis.TotalSpent += e.Amount
		analysis.TotalByCategory[e.Category] += e.Amount

		key := e.Date.Format("2006-01")
		bucket, ok := monthly[key]
		if !ok {
			bucket = &models.MonthlyTotal{Month: key}
			monthly[key] = bucket
		}
		bucket.Total += e.Amount
		bucket.Count++
	}
	for _, bucket := range monthly {
		analysis.MonthlyTrends = append(analysis.MonthlyTrends, *bucket)
	}
	sort.Slice(analysis.MonthlyTrends, func(i, j int) bool {
		return analysis.MonthlyTrends[i].Month < analysis.MonthlyTrends[j].Month
	})

	if vehicle.Mileage > 0 {
		analysis.CostPerMile = analysis.TotalSpent / float64(vehicle.Mileage)
	}
	analysis.ProjectedAnnualCost = projectAnnualCost(expenses, now)

	return analysis
}

// projectAnnualCost extrapolates the trailing 365 days of spending to a full
// year. The divisor is the span the expenses actually cover, not a fixed
// 365, so a vehicle with five months of history is not diluted by seven
// empty ones. An empty window projects zero.
func projectAnnualCost(expenses []models.Expense, now time.Time) float64 {
	windowStart := now.AddDate(0, 0, -365)

	var sum float64
	var oldest time.Time
	for _, e := range expenses {
		if e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		sum += e.Amount
		if oldest.IsZero() || e.Date.Before(oldest) {
			oldest = e.Date
		}
	}
	if oldest.IsZero() {
		return 0
	}

	return sum / daySpan(oldest, now) * 365
}
