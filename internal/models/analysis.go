package models

// Everything in this file is derived on demand by the analytics engine and
// returned straight to the client. None of it is persisted, so these types
// carry JSON tags only.

// MaintenanceRecommendation is a rule-generated service suggestion for work
// that has no logged record yet.
type MaintenanceRecommendation struct {
	Type          MaintenanceType `json:"type"`
	Priority      Priority        `json:"priority"`
	EstimatedCost float64         `json:"estimated_cost"`
	DueMileage    int64           `json:"due_mileage"`
	Description   string          `json:"description"`
}

// MaintenanceSchedule buckets a vehicle's maintenance into upcoming and
// overdue work plus generated recommendations. A history record lands in at
// most one bucket; recommendations are always separate from logged history.
type MaintenanceSchedule struct {
	Upcoming        []Maintenance               `json:"upcoming"`
	Overdue         []Maintenance               `json:"overdue"`
	Recommendations []MaintenanceRecommendation `json:"recommendations"`
}

// VehicleValuation estimates what a vehicle is worth today. All fields are
// zero when the purchase date or price was never recorded.
type VehicleValuation struct {
	PurchasePrice     float64 `json:"purchase_price"`
	TotalDepreciation float64 `json:"total_depreciation"`
	CurrentValue      float64 `json:"current_value"`
	DepreciationRate  float64 `json:"depreciation_rate"` // percent of purchase price lost
}

// MonthlyTotal is one calendar month's spending bucket.
type MonthlyTotal struct {
	Month string  `json:"month"` // "2025-07"
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ExpenseAnalysis aggregates a vehicle's spending.
type ExpenseAnalysis struct {
	TotalSpent          float64                     `json:"total_spent"`
	TotalByCategory     map[ExpenseCategory]float64 `json:"total_by_category"`
	MonthlyTrends       []MonthlyTotal              `json:"monthly_trends"`
	CostPerMile         float64                     `json:"cost_per_mile"`
	ProjectedAnnualCost float64                     `json:"projected_annual_cost"`
}

// FuelTrend classifies how fuel efficiency is moving.
type FuelTrend string

const (
	TrendImproving FuelTrend = "improving"
	TrendDeclining FuelTrend = "declining"
	TrendStable    FuelTrend = "stable"
)

// FuelEfficiencyAnalysis summarizes MPG and fuel spend across a vehicle's
// fill-up history.
type FuelEfficiencyAnalysis struct {
	CurrentMPG           float64   `json:"current_mpg"`
	AverageMPG           float64   `json:"average_mpg"`
	Trend                FuelTrend `json:"trend"`
	TrendRatio           float64   `json:"trend_ratio"` // fractional change, second half vs first
	CostPerMile          float64   `json:"cost_per_mile"`
	ProjectedMonthlyCost float64   `json:"projected_monthly_cost"`
	SampleCount          int       `json:"sample_count"` // usable MPG intervals
}

// VehicleKPIs is the per-vehicle rollup of every calculator.
type VehicleKPIs struct {
	TotalCostOfOwnership  float64   `json:"total_cost_of_ownership"`
	CostPerMile           float64   `json:"cost_per_mile"`
	MaintenanceEfficiency float64   `json:"maintenance_efficiency"` // completed / total records
	CurrentValue          float64   `json:"current_value"`
	TotalDepreciation     float64   `json:"total_depreciation"`
	ProjectedAnnualCost   float64   `json:"projected_annual_cost"`
	AverageMPG            float64   `json:"average_mpg"`
	FuelTrend             FuelTrend `json:"fuel_trend"`
	FuelTrendRatio        float64   `json:"fuel_trend_ratio"`
}

// InsightType classifies how urgent an insight reads.
type InsightType string

const (
	InsightWarning    InsightType = "warning"
	InsightSuggestion InsightType = "suggestion"
	InsightAlert      InsightType = "alert"
)

// Insight is a human-readable finding produced from KPI threshold rules.
type Insight struct {
	ID       string      `json:"id"`
	Type     InsightType `json:"type"`
	Priority Priority    `json:"priority"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
}
