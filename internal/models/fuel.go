package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelType identifies what went in the tank.
type FuelType string

const (
	FuelRegular  FuelType = "regular"
	FuelMidgrade FuelType = "midgrade"
	FuelPremium  FuelType = "premium"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelOther    FuelType = "other"
)

// IsValidFuelType checks if a fuel type is valid.
func IsValidFuelType(t FuelType) bool {
	switch t {
	case FuelRegular, FuelMidgrade, FuelPremium, FuelDiesel, FuelElectric, FuelOther:
		return true
	default:
		return false
	}
}

// FuelEntry represents a single fill-up. Consecutive entries for the same
// vehicle are what the efficiency analysis computes MPG intervals from.
type FuelEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"user_id"`
	VehicleID      string             `bson:"vehicle_id" json:"vehicle_id"`
	Date           time.Time          `bson:"date" json:"date"`
	Mileage        int64              `bson:"mileage" json:"mileage"` // odometer at fill-up
	Gallons        float64            `bson:"gallons" json:"gallons"`
	PricePerGallon float64            `bson:"price_per_gallon" json:"price_per_gallon"`
	TotalCost      float64            `bson:"total_cost" json:"total_cost"`
	FuelType       FuelType           `bson:"fuel_type" json:"fuel_type"`
	Station        string             `bson:"station,omitempty" json:"station,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
