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

// FuelHandler handles fuel entry CRUD requests
type FuelHandler struct {
	fuel     db.FuelCollection
	vehicles db.VehicleCollection
}

// NewFuelHandler creates a new fuel handler
func NewFuelHandler(fuel db.FuelCollection, vehicles db.VehicleCollection) *FuelHandler {
	return &FuelHandler{fuel: fuel, vehicles: vehicles}
}

// List returns the caller's fill-ups, optionally filtered with ?vehicle_id=
func (h *FuelHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	entries, err := h.fuel.FindFuelEntries(r.Context(), claims.UserID, r.URL.Query().Get("vehicle_id"))
	if err != nil {
		http.Error(w, "Failed to load fuel entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Create records a fill-up against one of the caller's vehicles
func (h *FuelHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var entry models.FuelEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	applyFuelDefaults(&entry)
	if err := validateFuelEntry(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, entry.VehicleID, claims.UserID) {
		return
	}

	entry.ID = primitive.NewObjectID()
	entry.UserID = claims.UserID
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()

	if err := h.fuel.InsertFuelEntry(r.Context(), entry); err != nil {
		http.Error(w, "Failed to create fuel entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// Get returns one fuel entry by id
func (h *FuelHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedFuelEntry(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// Update replaces a fuel entry
func (h *FuelHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedFuelEntry(w, r)
	if !ok {
		return
	}

	var updated models.FuelEntry
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}
	applyFuelDefaults(&updated)
	if err := validateFuelEntry(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, updated.VehicleID, existing.UserID) {
		return
	}

	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.fuel.UpdateFuelEntry(r.Context(), existing.ID.Hex(), updated); err != nil {
		http.Error(w, "Failed to update fuel entry", http.StatusInternalServerError)
		return
	}

	updated.ID = existing.ID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes a fuel entry
func (h *FuelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedFuelEntry(w, r)
	if !ok {
		return
	}

	if err := h.fuel.DeleteFuelEntry(r.Context(), entry.ID.Hex()); err != nil {
		http.Error(w, "Failed to delete fuel entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedFuelEntry loads the path entry and verifies the caller owns it.
func (h *FuelHandler) ownedFuelEntry(w http.ResponseWriter, r *http.Request) (*models.FuelEntry, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}

	entry, err := h.fuel.FindFuelEntryByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			http.Error(w, "Invalid fuel entry ID", http.StatusBadRequest)
			return nil, false
		}
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Fuel entry not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to load fuel entry", http.StatusInternalServerError)
		return nil, false
	}

	if entry.UserID != claims.UserID {
		http.Error(w, "Fuel entry not found", http.StatusNotFound)
		return nil, false
	}
	return entry, true
}

func (h *FuelHandler) callerOwnsVehicle(w http.ResponseWriter, r *http.Request, vehicleID, userID string) bool {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil || vehicle.UserID != userID {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return false
	}
	return true
}

// applyFuelDefaults fills the derivable fields a client may omit.
func applyFuelDefaults(entry *models.FuelEntry) {
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if entry.FuelType == "" {
		entry.FuelType = models.FuelRegular
	}
	if entry.TotalCost == 0 && entry.Gallons > 0 && entry.PricePerGallon > 0 {
		entry.TotalCost = entry.Gallons * entry.PricePerGallon
	}
}

func validateFuelEntry(entry *models.FuelEntry) error {
	if entry.VehicleID == "" {
		return errors.New("vehicle_id is required")
	}
	if entry.Gallons <= 0 {
		return errors.New("gallons must be positive")
	}
	if entry.Mileage < 0 {
		return errors.New("mileage cannot be negative")
	}
	if entry.PricePerGallon < 0 || entry.TotalCost < 0 {
		return errors.New("cost cannot be negative")
	}
	if !models.IsValidFuelType(entry.FuelType) {
		return errors.New("invalid fuel type")
	}
	return nil
}
