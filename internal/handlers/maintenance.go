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

// MaintenanceHandler handles maintenance record CRUD requests
type MaintenanceHandler struct {
	maintenance db.MaintenanceCollection
	vehicles    db.VehicleCollection
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenance db.MaintenanceCollection, vehicles db.VehicleCollection) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, vehicles: vehicles}
}

// List returns the caller's maintenance records, optionally filtered with
// ?vehicle_id=
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	records, err := h.maintenance.FindMaintenance(r.Context(), claims.UserID, r.URL.Query().Get("vehicle_id"))
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// Create logs a maintenance record against one of the caller's vehicles
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var record models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if record.Date.IsZero() {
		record.Date = time.Now()
	}
	if record.Priority == "" {
		record.Priority = models.PriorityMedium
	}
	if err := validateMaintenance(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, record.VehicleID, claims.UserID) {
		return
	}

	record.ID = primitive.NewObjectID()
	record.UserID = claims.UserID
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if err := h.maintenance.InsertMaintenance(r.Context(), record); err != nil {
		http.Error(w, "Failed to create maintenance record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// Get returns one maintenance record by id
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedMaintenance(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// Update replaces a maintenance record
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedMaintenance(w, r)
	if !ok {
		return
	}

	var updated models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}
	if updated.Priority == "" {
		updated.Priority = existing.Priority
	}
	if err := validateMaintenance(&updated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.callerOwnsVehicle(w, r, updated.VehicleID, existing.UserID) {
		return
	}

	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt

	if err := h.maintenance.UpdateMaintenance(r.Context(), existing.ID.Hex(), updated); err != nil {
		http.Error(w, "Failed to update maintenance record", http.StatusInternalServerError)
		return
	}

	updated.ID = existing.ID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete removes a maintenance record
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	record, ok := h.ownedMaintenance(w, r)
	if !ok {
		return
	}

	if err := h.maintenance.DeleteMaintenance(r.Context(), record.ID.Hex()); err != nil {
		http.Error(w, "Failed to delete maintenance record", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedMaintenance loads the path record and verifies the caller owns it.
func (h *MaintenanceHandler) ownedMaintenance(w http.ResponseWriter, r *http.Request) (*models.Maintenance, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}

	record, err := h.maintenance.FindMaintenanceByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			http.Error(w, "Invalid maintenance ID", http.StatusBadRequest)
			return nil, false
		}
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Maintenance record not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to load maintenance record", http.StatusInternalServerError)
		return nil, false
	}

	if record.UserID != claims.UserID {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return nil, false
	}
	return record, true
}

func (h *MaintenanceHandler) callerOwnsVehicle(w http.ResponseWriter, r *http.Request, vehicleID, userID string) bool {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil || vehicle.UserID != userID {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return false
	}
	return true
}

func validateMaintenance(record *models.Maintenance) error {
	if record.VehicleID == "" {
		return errors.New("vehicle_id is required")
	}
	if !models.IsValidMaintenanceType(record.Type) {
		return errors.New("invalid maintenance type")
	}
	if !models.IsValidMaintenanceStatus(record.Status) {
		return errors.New("invalid maintenance status")
	}
	if !models.IsValidPriority(record.Priority) {
		return errors.New("invalid priority")
	}
	if record.Mileage < 0 || record.DueMileage < 0 {
		return errors.New("mileage cannot be negative")
	}
	if record.Cost != nil && *record.Cost < 0 {
		return errors.New("cost cannot be negative")
	}
	return nil
}
