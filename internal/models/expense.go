package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseType classifies what an expense paid for.
type ExpenseType string

const (
	ExpenseFuel         ExpenseType = "fuel"
	ExpenseMaintenance  ExpenseType = "maintenance"
	ExpenseRepair       ExpenseType = "repair"
	ExpenseInsurance    ExpenseType = "insurance"
	ExpenseRegistration ExpenseType = "registration"
	ExpenseService      ExpenseType = "service"
	ExpenseOtherType    ExpenseType = "other"
)

// IsValidExpenseType checks if an expense type is valid.
func IsValidExpenseType(t ExpenseType) bool {
	switch t {
	case ExpenseFuel, ExpenseMaintenance, ExpenseRepair, ExpenseInsurance,
		ExpenseRegistration, ExpenseService, ExpenseOtherType:
		return true
	default:
		return false
	}
}

// ExpenseCategory classifies why an expense happened.
type ExpenseCategory string

const (
	CategoryRoutine   ExpenseCategory = "routine"
	CategoryEmergency ExpenseCategory = "emergency"
	CategoryUpgrade   ExpenseCategory = "upgrade"
	CategoryLegal     ExpenseCategory = "legal"
	CategoryOther     ExpenseCategory = "other"
)

// IsValidExpenseCategory checks if an expense category is valid.
func IsValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryRoutine, CategoryEmergency, CategoryUpgrade, CategoryLegal, CategoryOther:
		return true
	default:
		return false
	}
}

// Expense represents a single cost incurred on a vehicle.
type Expense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	VehicleID   string             `bson:"vehicle_id" json:"vehicle_id"`
	Date        time.Time          `bson:"date" json:"date"`
	Amount      float64            `bson:"amount" json:"amount"` // in USD
	Type        ExpenseType        `bson:"type" json:"type"`
	Category    ExpenseCategory    `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Mileage     int64              `bson:"mileage" json:"mileage"` // odometer when the expense occurred
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
