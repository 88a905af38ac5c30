package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus describes where a vehicle is in its ownership lifecycle.
type VehicleStatus string

const (
	VehicleActive        VehicleStatus = "active"
	VehicleInactive      VehicleStatus = "inactive"
	VehicleInMaintenance VehicleStatus = "in_maintenance"
	VehicleSold          VehicleStatus = "sold"
	VehicleScrapped      VehicleStatus = "scrapped"
)

// IsValidVehicleStatus checks if a vehicle status is valid.
func IsValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleActive, VehicleInactive, VehicleInMaintenance, VehicleSold, VehicleScrapped:
		return true
	default:
		return false
	}
}

// Vehicle represents a vehicle in a user's garage. Mileage is the current
// odometer reading in miles and only ever moves forward; the vehicle and
// odometer-ingest handlers enforce that, not the analytics code.
type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	Make          string             `bson:"make" json:"make"`
	Model         string             `bson:"model" json:"model"`
	Year          int                `bson:"year" json:"year"`
	VIN           string             `bson:"vin,omitempty" json:"vin,omitempty"`
	LicensePlate  string             `bson:"license_plate,omitempty" json:"license_plate,omitempty"`
	Mileage       int64              `bson:"mileage" json:"mileage"`
	Status        VehicleStatus      `bson:"status" json:"status"`
	PurchaseDate  *time.Time         `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	PurchasePrice *float64           `bson:"purchase_price,omitempty" json:"purchase_price,omitempty"` // in USD
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
