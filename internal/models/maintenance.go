package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceType identifies the kind of service performed or planned.
type MaintenanceType string

const (
	MaintenanceOilChange      MaintenanceType = "oil_change"
	MaintenanceTireRotation   MaintenanceType = "tire_rotation"
	MaintenanceBrakeService   MaintenanceType = "brake_service"
	MaintenanceInspection     MaintenanceType = "inspection"
	MaintenanceFluidService   MaintenanceType = "fluid_service"
	MaintenanceFilterChange   MaintenanceType = "filter_change"
	MaintenanceBatteryService MaintenanceType = "battery_service"
	MaintenanceTransmission   MaintenanceType = "transmission_service"
	MaintenanceEngineService  MaintenanceType = "engine_service"
	MaintenanceElectrical     MaintenanceType = "electrical_service"
	MaintenanceACService      MaintenanceType = "ac_service"
	MaintenanceExhaustService MaintenanceType = "exhaust_service"
	MaintenanceSuspension     MaintenanceType = "suspension_service"
	MaintenanceWheelAlignment MaintenanceType = "wheel_alignment"
	MaintenanceScheduled      MaintenanceType = "scheduled_maintenance"
	MaintenanceRepair         MaintenanceType = "repair"
	MaintenanceRecall         MaintenanceType = "recall"
	MaintenanceOther          MaintenanceType = "other"
)

var validMaintenanceTypes = map[MaintenanceType]bool{
	MaintenanceOilChange:      true,
	MaintenanceTireRotation:   true,
	MaintenanceBrakeService:   true,
	MaintenanceInspection:     true,
	MaintenanceFluidService:   true,
	MaintenanceFilterChange:   true,
	MaintenanceBatteryService: true,
	MaintenanceTransmission:   true,
	MaintenanceEngineService:  true,
	MaintenanceElectrical:     true,
	MaintenanceACService:      true,
	MaintenanceExhaustService: true,
	MaintenanceSuspension:     true,
	MaintenanceWheelAlignment: true,
	MaintenanceScheduled:      true,
	MaintenanceRepair:         true,
	MaintenanceRecall:         true,
	MaintenanceOther:          true,
}

// IsValidMaintenanceType checks if a maintenance type is valid.
func IsValidMaintenanceType(t MaintenanceType) bool {
	return validMaintenanceTypes[t]
}

// MaintenanceStatus tracks a maintenance record through its lifecycle.
type MaintenanceStatus string

const (
	MaintenanceUpcoming   MaintenanceStatus = "upcoming"
	MaintenanceDue        MaintenanceStatus = "due"
	MaintenanceOverdue    MaintenanceStatus = "overdue"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceSkipped    MaintenanceStatus = "skipped"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// IsValidMaintenanceStatus checks if a maintenance status is valid.
func IsValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceUpcoming, MaintenanceDue, MaintenanceOverdue,
		MaintenanceInProgress, MaintenanceCompleted, MaintenanceSkipped, MaintenanceCancelled:
		return true
	default:
		return false
	}
}

// Priority ranks maintenance work and insights.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValidPriority checks if a priority is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Maintenance represents a vehicle maintenance record.
type Maintenance struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	VehicleID       string             `bson:"vehicle_id" json:"vehicle_id"`
	Type            MaintenanceType    `bson:"type" json:"type"`
	Status          MaintenanceStatus  `bson:"status" json:"status"`
	Date            time.Time          `bson:"date" json:"date"`
	Mileage         int64              `bson:"mileage" json:"mileage"`         // odometer at service
	DueMileage      int64              `bson:"due_mileage" json:"due_mileage"` // odometer target for the next service
	Cost            *float64           `bson:"cost,omitempty" json:"cost,omitempty"`
	Priority        Priority           `bson:"priority" json:"priority"`
	ServiceProvider string             `bson:"service_provider,omitempty" json:"service_provider,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
