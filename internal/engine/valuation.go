package engine

import (
	"math"
	"time"

	"github.com/okaradag/garagelog/internal/models"
)

const (
	// annualDepreciationRate compounds: a vehicle keeps 85% of the previous
	// year's value each full year of ownership.
	annualDepreciationRate = 0.15
	// perMileDepreciation is charged on the full odometer, not miles since
	// purchase. Purchase mileage is not recorded anywhere, so this
	// deliberately overstates depreciation for vehicles bought used.
	perMileDepreciation = 0.10
)

// Valuation estimates depreciation and current value. Vehicles missing a
// purchase date or price cannot be valued and yield an all-zero result.
func Valuation(vehicle models.Vehicle, now time.Time) models.VehicleValuation {
	if vehicle.PurchaseDate == nil || vehicle.PurchasePrice == nil {
		return models.VehicleValuation{}
	}

	price := *vehicle.PurchasePrice
	years := wholeYears(*vehicle.PurchaseDate, now)
	timeDepreciation := price * (1 - math.Pow(1-annualDepreciationRate, float64(years)))
	mileageDepreciation := float64(vehicle.Mileage) * perMileDepreciation
	depreciation := timeDepreciation + mileageDepreciation

	valuation := models.VehicleValuation{
		PurchasePrice:     price,
		TotalDepreciation: depreciation,
		CurrentValue:      math.Max(0, price-depreciation),
	}
	if price > 0 {
		valuation.DepreciationRate = depreciation / price * 100
	}
	return valuation
}
