package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okaradag/garagelog/internal/db"
	"github.com/okaradag/garagelog/internal/engine"
	"github.com/okaradag/garagelog/internal/middleware"
	"github.com/okaradag/garagelog/internal/models"
)

// AnalyticsHandler serves the derived per-vehicle views. Every response is
// computed fresh from the stored records on each request; nothing here is
// cached or persisted.
type AnalyticsHandler struct {
	vehicles    db.VehicleCollection
	expenses    db.ExpenseCollection
	maintenance db.MaintenanceCollection
	fuel        db.FuelCollection
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(vehicles db.VehicleCollection, expenses db.ExpenseCollection, maintenance db.MaintenanceCollection, fuel db.FuelCollection) *AnalyticsHandler {
	return &AnalyticsHandler{
		vehicles:    vehicles,
		expenses:    expenses,
		maintenance: maintenance,
		fuel:        fuel,
	}
}

// Schedule returns the maintenance schedule for a vehicle
func (h *AnalyticsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	history, err := h.maintenance.FindMaintenance(r.Context(), vehicle.UserID, vehicle.ID.Hex())
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	schedule := engine.BuildSchedule(*vehicle, history, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

// Valuation returns the depreciation estimate for a vehicle
func (h *AnalyticsHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	valuation := engine.Valuation(*vehicle, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(valuation)
}

// ExpenseAnalytics returns the spending breakdown for a vehicle
func (h *AnalyticsHandler) ExpenseAnalytics(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenses.FindExpenses(r.Context(), vehicle.UserID, vehicle.ID.Hex())
	if err != nil {
		http.Error(w, "Failed to load expenses", http.StatusInternalServerError)
		return
	}

	analysis := engine.AnalyzeExpenses(expenses, *vehicle, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// FuelAnalytics returns the fuel efficiency summary for a vehicle
func (h *AnalyticsHandler) FuelAnalytics(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	entries, err := h.fuel.FindFuelEntries(r.Context(), vehicle.UserID, vehicle.ID.Hex())
	if err != nil {
		http.Error(w, "Failed to load fuel entries", http.StatusInternalServerError)
		return
	}

	analysis := engine.AnalyzeFuel(entries)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// KPIs returns the aggregate cost and efficiency summary for a vehicle
func (h *AnalyticsHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	kpis, ok := h.computeKPIs(w, r, vehicle)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kpis)
}

// Insights returns the threshold-rule findings for a vehicle
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	kpis, ok := h.computeKPIs(w, r, vehicle)
	if !ok {
		return
	}
	insights := engine.GenerateInsights(kpis, *vehicle)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(insights)
}

// computeKPIs loads every record collection for the vehicle and rolls them
// up; on a load failure it writes the error response and reports false.
func (h *AnalyticsHandler) computeKPIs(w http.ResponseWriter, r *http.Request, vehicle *models.Vehicle) (models.VehicleKPIs, bool) {
	vehicleID := vehicle.ID.Hex()

	expenses, err := h.expenses.FindExpenses(r.Context(), vehicle.UserID, vehicleID)
	if err != nil {
		http.Error(w, "Failed to load expenses", http.StatusInternalServerError)
		return models.VehicleKPIs{}, false
	}

	history, err := h.maintenance.FindMaintenance(r.Context(), vehicle.UserID, vehicleID)
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return models.VehicleKPIs{}, false
	}

	entries, err := h.fuel.FindFuelEntries(r.Context(), vehicle.UserID, vehicleID)
	if err != nil {
		http.Error(w, "Failed to load fuel entries", http.StatusInternalServerError)
		return models.VehicleKPIs{}, false
	}

	return engine.ComputeKPIs(*vehicle, expenses, history, entries, time.Now()), true
}

// ownedVehicle loads the path vehicle and verifies the caller owns it.
func (h *AnalyticsHandler) ownedVehicle(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
			return nil, false
		}
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to load vehicle", http.StatusInternalServerError)
		return nil, false
	}

	if vehicle.UserID != claims.UserID {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return nil, false
	}
	return vehicle, true
}
