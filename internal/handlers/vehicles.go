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

// VehicleHandler handles vehicle CRUD requests
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// List returns all vehicles owned by the caller
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	vehicles, err := h.vehicles.FindVehiclesByUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicles)
}

// Create adds a vehicle to the caller's garage
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if vehicle.Status == "" {
		vehicle.Status = models.VehicleActive
	}
	if err := validateVehicle(&vehicle); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.UserID = claims.UserID
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(vehicle)
}

// Get returns one vehicle by id
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicle)
}

// Update replaces a vehicle's details. The odometer can only move forward;
// an update carrying a lower mileage than the stored reading is rejected.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	var updated models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if err := validateVehicle(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if updated.Mileage < existing.Mileage {
		http.Error(w, "Mileage cannot decrease", http.StatusBadRequest)
		return
	}

	// Owner and creation time survive the replace
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.vehicles.UpdateVehicle(r.Context(), existing.ID.Hex(), updated); err != nil {
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}

	updated.ID = existing.ID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes a vehicle from the caller's garage
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), vehicle.ID.Hex()); err != nil {
		http.Error(w, "Failed to delete vehicle", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedVehicle loads the path vehicle and verifies the caller owns it.
// Unknown ids and other users' vehicles both read as not found.
func (h *VehicleHandler) ownedVehicle(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
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

func validateVehicle(vehicle *models.Vehicle) error {
	if vehicle.Make == "" || vehicle.Model == "" {
		return errors.New("make and model are required")
	}
	if vehicle.Year < 1900 || vehicle.Year > time.Now().Year()+1 {
		return errors.New("year is out of range")
	}
	if vehicle.Mileage < 0 {
		return errors.New("mileage cannot be negative")
	}
	if !models.IsValidVehicleStatus(vehicle.Status) {
		return errors.New("invalid vehicle status")
	}
	if vehicle.PurchasePrice != nil && *vehicle.PurchasePrice < 0 {
		return errors.New("purchase price cannot be negative")
	}
	return nil
}
