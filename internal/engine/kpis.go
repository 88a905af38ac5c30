package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okaradag/garagelog/internal/models"
)

const (
	// highCostPerMile is the per-mile ownership cost above which a vehicle
	// reads as expensive to run.
	highCostPerMile = 0.75
	// lowMaintenanceRatio is the completion ratio below which maintenance
	// upkeep reads as falling behind.
	lowMaintenanceRatio = 0.70
	// decliningFuelTrend is the fractional MPG drop beyond which fuel economy
	// reads as degrading.
	decliningFuelTrend = -0.10
)

// ComputeKPIs rolls every calculator into one per-vehicle summary. Total cost
// of ownership covers the purchase price plus every logged expense,
// maintenance cost, and fill-up; missing optionals count as zero.
func ComputeKPIs(vehicle models.Vehicle, expenses []models.Expense, history []models.Maintenance, fuel []models.FuelEntry, now time.Time) models.VehicleKPIs {
	valuation := Valuation(vehicle, now)
	expenseAnalysis := AnalyzeExpenses(expenses, vehicle, now)
	fuelAnalysis := AnalyzeFuel(fuel)

	tco := expenseAnalysis.TotalSpent
	if vehicle.PurchasePrice != nil {
		tco += *vehicle.PurchasePrice
	}
	for _, m := range history {
		if m.Cost != nil {
			tco += *m.Cost
		}
	}
	for _, f := range fuel {
		tco += f.TotalCost
	}

	kpis := models.VehicleKPIs{
		TotalCostOfOwnership: tco,
		CurrentValue:         valuation.CurrentValue,
		TotalDepreciation:    valuation.TotalDepreciation,
		ProjectedAnnualCost:  expenseAnalysis.ProjectedAnnualCost,
		AverageMPG:           fuelAnalysis.AverageMPG,
		FuelTrend:            fuelAnalysis.Trend,
		FuelTrendRatio:       fuelAnalysis.TrendRatio,
	}
	if vehicle.Mileage > 0 {
		kpis.CostPerMile = tco / float64(vehicle.Mileage)
	}
	if len(history) > 0 {
		completed := 0
		for _, m := range history {
			if m.Status == models.MaintenanceCompleted {
				completed++
			}
		}
		kpis.MaintenanceEfficiency = float64(completed) / float64(len(history))
	}

	return kpis
}

// GenerateInsights turns KPI thresholds into readable findings. Each rule is
// evaluated independently, so several insights can fire for one vehicle.
func GenerateInsights(kpis models.VehicleKPIs, vehicle models.Vehicle) []models.Insight {
	name := fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
	insights := []models.Insight{}

	if kpis.CostPerMile > highCostPerMile {
		insights = append(insights, models.Insight{
			ID:       uuid.NewString(),
			Type:     models.InsightWarning,
			Priority: models.PriorityMedium,
			Title:    "High cost per mile",
			Message:  fmt.Sprintf("Your %s costs $%.2f per mile to own and operate, above the $%.2f benchmark. Review recurring expenses for savings.", name, kpis.CostPerMile, highCostPerMile),
		})
	}

	// MaintenanceEfficiency is zero with no records at all, so vehicles
	// without any logged maintenance fire this rule too.
	if kpis.MaintenanceEfficiency < lowMaintenanceRatio {
		insights = append(insights, models.Insight{
			ID:       uuid.NewString(),
			Type:     models.InsightSuggestion,
			Priority: models.PriorityHigh,
			Title:    "Maintenance falling behind",
			Message:  fmt.Sprintf("Only %.0f%% of scheduled maintenance on your %s is completed. Catching up prevents costlier repairs later.", kpis.MaintenanceEfficiency*100, name),
		})
	}

	if kpis.FuelTrendRatio < decliningFuelTrend {
		insights = append(insights, models.Insight{
			ID:       uuid.NewString(),
			Type:     models.InsightAlert,
			Priority: models.PriorityHigh,
			Title:    "Fuel efficiency declining",
			Message:  fmt.Sprintf("Fuel efficiency on your %s has dropped %.0f%% over its recent history. An inspection may be worthwhile.", name, -kpis.FuelTrendRatio*100),
		})
	}

	return insights
}
