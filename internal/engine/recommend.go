package engine

import (
	"github.com/okaradag/garagelog/internal/models"
)

// ServiceRule is the interval policy for one maintenance type. Mileage
// fields are miles since the last completed service of that type.
type ServiceRule struct {
	IntervalMiles int64   // standard service interval; due mileage = baseline + interval
	WarnMiles     int64   // recommendation fires strictly past this
	HighMiles     int64   // priority escalates strictly past this; 0 = never escalates
	EstimatedCost float64 // in USD
	Description   string
}

// serviceRules holds the rule-backed maintenance types. Warn thresholds sit
// slightly under the interval so a recommendation surfaces before the hard
// due point. Adding a type here is all it takes to extend the engine.
var serviceRules = map[models.MaintenanceType]ServiceRule{
	models.MaintenanceOilChange: {
		IntervalMiles: 5000,
		WarnMiles:     4500,
		HighMiles:     5500,
		EstimatedCost: 75,
		Description:   "Oil change recommended every 5,000 miles",
	},
	models.MaintenanceTireRotation: {
		IntervalMiles: 7500,
		WarnMiles:     7000,
		EstimatedCost: 50,
		Description:   "Tire rotation recommended every 7,500 miles",
	},
	models.MaintenanceBrakeService: {
		IntervalMiles: 25000,
		WarnMiles:     24000,
		HighMiles:     30000,
		EstimatedCost: 300,
		Description:   "Brake service recommended every 25,000 miles",
	},
}

// ruleOrder fixes the order recommendations are emitted in.
var ruleOrder = []models.MaintenanceType{
	models.MaintenanceOilChange,
	models.MaintenanceTireRotation,
	models.MaintenanceBrakeService,
}

// Recommend computes due-service recommendations for a vehicle from its
// maintenance history. A type with no completed record is treated as never
// serviced, baseline mileage zero: a brand-new vehicle gets nothing, but a
// high-mileage vehicle with an empty history gets every recommendation.
func Recommend(vehicle models.Vehicle, history []models.Maintenance) []models.MaintenanceRecommendation {
	recommendations := []models.MaintenanceRecommendation{}

	for _, serviceType := range ruleOrder {
		rule := serviceRules[serviceType]
		baseline := lastServiceMileage(history, serviceType)
		milesSince := vehicle.Mileage - baseline
		if milesSince <= rule.WarnMiles {
			continue
		}

		priority := models.PriorityMedium
		if rule.HighMiles > 0 && milesSince > rule.HighMiles {
			priority = models.PriorityHigh
		}

		recommendations = append(recommendations, models.MaintenanceRecommendation{
			Type:          serviceType,
			Priority:      priority,
			EstimatedCost: rule.EstimatedCost,
			DueMileage:    baseline + rule.IntervalMiles,
			Description:   rule.Description,
		})
	}

	return recommendations
}

// lastServiceMileage returns the highest odometer reading among completed
// records of the given type, or 0 when the type was never serviced.
func lastServiceMileage(history []models.Maintenance, serviceType models.MaintenanceType) int64 {
	var baseline int64
	for _, m := range history {
		if m.Type != serviceType || m.Status != models.MaintenanceCompleted {
			continue
		}
		if m.Mileage > baseline {
			baseline = m.Mileage
		}
	}
	return baseline
}
