package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okaradag/garagelog/internal/db"
	"github.com/okaradag/garagelog/internal/middleware"
	"github.com/okaradag/garagelog/internal/models"
)

// ExpenseHandler handles expense CRUD requests
type ExpenseHandler struct {
	expenses db.ExpenseCollection
	vehicles db.VehicleCollection
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenses db.ExpenseCollection, vehicles db.VehicleCollection) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, vehicles: vehicles}
}

// List returns the caller's expenses, optionally filtered with ?vehicle_id=
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	expenses, err := h.expenses.FindExpenses(r.Context(), claims.UserID, r.URL.Query().Get("vehicle_id"))
	if err != nil {
		http.Error(w, "Failed to load expenses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// Create records a new expense against one of the caller's vehicles
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	if err := validateExpense(&expense); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, expense.VehicleID, claims.UserID) {
		return
	}

	expense.ID = primitive.NewObjectID()
	expense.UserID = claims.UserID
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = time.Now()

	if err := h.expenses.InsertExpense(r.Context(), expense); err != nil {
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(expense)
}

// Get returns one expense by id
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, ok := h.ownedExpense(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

// Update replaces an expense
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedExpense(w, r)
	if !ok {
		return
	}

	var updated models.Expense
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}
	if err := validateExpense(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, updated.VehicleID, existing.UserID) {
		return
	}

	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.expenses.UpdateExpense(r.Context(), existing.ID.Hex(), updated); err != nil {
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	updated.ID = existing.ID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expense, ok := h.ownedExpense(w, r)
	if !ok {
		return
	}

	if err := h.expenses.DeleteExpense(r.Context(), expense.ID.Hex()); err != nil {
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedExpense loads the path expense and verifies the caller owns it.
func (h *ExpenseHandler) ownedExpense(w http.ResponseWriter, r *http.Request) (*models.Expense, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}

	expense, err := h.expenses.FindExpenseByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			http.Error(w, "Invalid expense ID", http.StatusBadRequest)
			return nil, false
		}
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to load expense", http.StatusInternalServerError)
		return nil, false
	}

	if expense.UserID != claims.UserID {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return nil, false
	}
	return expense, true
}

// callerOwnsVehicle verifies the referenced vehicle exists and belongs to
// the caller, writing the error response when it does not.
func (h *ExpenseHandler) callerOwnsVehicle(w http.ResponseWriter, r *http.Request, vehicleID, userID string) bool {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil || vehicle.UserID != userID {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return false
	}
	return true
}

func validateExpense(expense *models.Expense) error {
	if expense.VehicleID == "" {
		return errors.New("vehicle_id is required")
	}
	if expense.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if !models.IsValidExpenseType(expense.Type) {
		return errors.New("invalid expense type")
	}
	if !models.IsValidExpenseCategory(expense.Category) {
		return errors.New("invalid expense category")
	}
	if expense.Mileage < 0 {
		return errors.New("mileage cannot be negative")
	}
	return nil
}
