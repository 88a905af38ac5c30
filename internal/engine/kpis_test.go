package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okaradag/garagelog/internal/models"
)

func TestComputeKPIs_TotalCostOfOwnership(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	vehicle := testVehicle(10000)
	vehicle.PurchasePrice = ptrFloat(20000)
	vehicle.PurchaseDate = ptrTime(now.AddDate(-1, 0, 0))

	expenses := []models.Expense{
		expenseOn(now.AddDate(0, 0, -30), 100, models.CategoryRoutine),
		expenseOn(now.AddDate(0, 0, -60), 200, models.CategoryRoutine),
	}
	history := []models.Maintenance{
		{Type: models.MaintenanceOilChange, Status: models.MaintenanceCompleted, Date: now.AddDate(0, -2, 0), Mileage: 9000, Cost: ptrFloat(150)},
		{Type: models.MaintenanceInspection, Status: models.MaintenanceUpcoming, Date: now.AddDate(0, 1, 0)}, // no cost yet
	}
	fuel := []models.FuelEntry{
		fillUp(now.AddDate(0, 0, -20), 9500, 10, 50),
		fillUp(now.AddDate(0, 0, -5), 9800, 10, 60),
	}

	kpis := ComputeKPIs(vehicle, expenses, history, fuel, now)

	assert.InDelta(t, 20560.0, kpis.TotalCostOfOwnership, 0.001)
	assert.InDelta(t, 2.056, kpis.CostPerMile, 0.001)
	assert.InDelta(t, 0.5, kpis.MaintenanceEfficiency, 0.001)
	assert.InDelta(t, 30.0, kpis.AverageMPG, 0.001)
	assert.Equal(t, models.TrendStable, kpis.FuelTrend)
	assert.Greater(t, kpis.CurrentValue, 0.0)
	assert.Greater(t, kpis.TotalDepreciation, 0.0)
	assert.Greater(t, kpis.ProjectedAnnualCost, 0.0)
}

func TestComputeKPIs_ZeroMileageGuard(t *testing.T) {
	kpis := ComputeKPIs(testVehicle(0), nil, nil, nil, time.Now())

	assert.Equal(t, 0.0, kpis.CostPerMile)
	assert.Equal(t, 0.0, kpis.TotalCostOfOwnership)
	assert.Equal(t, 0.0, kpis.MaintenanceEfficiency)
}

func TestComputeKPIs_NoPurchasePriceStillSumsCosts(t *testing.T) {
	now := time.Now()
	expenses := []models.Expense{expenseOn(now.AddDate(0, 0, -10), 300, models.CategoryRoutine)}

	kpis := ComputeKPIs(testVehicle(1000), expenses, nil, nil, now)

	assert.InDelta(t, 300.0, kpis.TotalCostOfOwnership, 0.001)
	assert.Equal(t, 0.0, kpis.CurrentValue)
}

func TestGenerateInsights_AllRulesFire(t *testing.T) {
	kpis := models.VehicleKPIs{
		CostPerMile:           1.20,
		MaintenanceEfficiency: 0.4,
		FuelTrendRatio:        -0.25,
		FuelTrend:             models.TrendDeclining,
	}

	insights := GenerateInsights(kpis, testVehicle(50000))

	require.Len(t, insights, 3)

	assert.Equal(t, models.InsightWarning, insights[0].Type)
	assert.Equal(t, models.PriorityMedium, insights[0].Priority)

	assert.Equal(t, models.InsightSuggestion, insights[1].Type)
	assert.Equal(t, models.PriorityHigh, insights[1].Priority)

	assert.Equal(t, models.InsightAlert, insights[2].Type)
	assert.Equal(t, models.PriorityHigh, insights[2].Priority)

	seen := map[string]bool{}
	for _, in := range insights {
		assert.NotEmpty(t, in.ID)
		assert.False(t, seen[in.ID], "insight ids must be unique")
		seen[in.ID] = true
		assert.Contains(t, in.Message, "2020 Toyota Corolla")
		assert.NotEmpty(t, in.Title)
	}
}

func TestGenerateInsights_HealthyVehicle(t *testing.T) {
	kpis := models.VehicleKPIs{
		CostPerMile:           0.40,
		MaintenanceEfficiency: 0.9,
		FuelTrendRatio:        0.02,
		FuelTrend:             models.TrendStable,
	}

	insights := GenerateInsights(kpis, testVehicle(50000))

	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestGenerateInsights_NoMaintenanceRecordsFiresSuggestion(t *testing.T) {
	// Efficiency reads zero with no records at all, which is below the
	// completion threshold on purpose.
	kpis := ComputeKPIs(testVehicle(0), nil, nil, nil, time.Now())
	insights := GenerateInsights(kpis, testVehicle(0))

	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightSuggestion, insights[0].Type)
}

func TestGenerateInsights_BoundariesAreStrict(t *testing.T) {
	// Sitting exactly on a threshold does not fire the rule.
	kpis := models.VehicleKPIs{
		CostPerMile:           0.75,
		MaintenanceEfficiency: 0.70,
		FuelTrendRatio:        -0.10,
	}

	assert.Empty(t, GenerateInsights(kpis, testVehicle(1000)))
}
