package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okaradag/garagelog/internal/db"
	"github.com/okaradag/garagelog/internal/models"
)

func TestExpenseHandler_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		userID := primitive.NewObjectID().Hex()
		vehicle := &models.Vehicle{ID: primitive.NewObjectID(), UserID: userID, Make: "Toyota", Model: "Corolla", Year: 2020}
		mockVehicles.On("FindVehicleByID", mock.Anything, vehicle.ID.Hex()).Return(vehicle, nil)
		mockExpenses.On("InsertExpense", mock.Anything, mock.AnythingOfType("models.Expense")).Return(nil)

		expense := models.Expense{
			VehicleID: vehicle.ID.Hex(),
			Amount:    89.50,
			Type:      models.ExpenseService,
			Category:  models.CategoryRoutine,
			Mileage:   45200,
		}
		body, err := json.Marshal(expense)
		if err != nil {
			t.Fatalf("Failed to marshal expense: %v", err)
		}
		req := authedRequest("POST", "/api/expenses", bytes.NewBuffer(body), userID)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response models.Expense
		err = json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.False(t, response.ID.IsZero())
		assert.Equal(t, userID, response.UserID)
		// An omitted date defaults to now
		assert.False(t, response.Date.IsZero())

		mockExpenses.AssertExpectations(t)
		mockVehicles.AssertExpectations(t)
	})

	t.Run("vehicle owned by someone else", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		vehicle := &models.Vehicle{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID().Hex()}
		mockVehicles.On("FindVehicleByID", mock.Anything, vehicle.ID.Hex()).Return(vehicle, nil)

		expense := models.Expense{
			VehicleID: vehicle.ID.Hex(),
			Amount:    50,
			Type:      models.ExpenseFuel,
			Category:  models.CategoryRoutine,
		}
		body, err := json.Marshal(expense)
		if err != nil {
			t.Fatalf("Failed to marshal expense: %v", err)
		}
		req := authedRequest("POST", "/api/expenses", bytes.NewBuffer(body), primitive.NewObjectID().Hex())
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockExpenses.AssertNotCalled(t, "InsertExpense", mock.Anything, mock.Anything)
	})

	t.Run("invalid expense type", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		body := `{"vehicle_id":"65f0123456789abcdef01234","amount":50,"type":"bribery","category":"routine"}`
		req := authedRequest("POST", "/api/expenses", bytes.NewBufferString(body), primitive.NewObjectID().Hex())
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative amount", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		body := `{"vehicle_id":"65f0123456789abcdef01234","amount":-50,"type":"fuel","category":"routine"}`
		req := authedRequest("POST", "/api/expenses", bytes.NewBufferString(body), primitive.NewObjectID().Hex())
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExpenseHandler_List(t *testing.T) {
	t.Run("passes the vehicle filter through", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		userID := primitive.NewObjectID().Hex()
		vehicleID := primitive.NewObjectID().Hex()
		expenses := []models.Expense{
			{ID: primitive.NewObjectID(), UserID: userID, VehicleID: vehicleID, Amount: 45},
		}
		mockExpenses.On("FindExpenses", mock.Anything, userID, vehicleID).Return(expenses, nil)

		req := authedRequest("GET", "/api/expenses?vehicle_id="+vehicleID, nil, userID)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []models.Expense
		err := json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		assert.Len(t, response, 1)

		mockExpenses.AssertExpectations(t)
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		userID := primitive.NewObjectID().Hex()
		mockExpenses.On("FindExpenses", mock.Anything, userID, "").Return([]models.Expense{}, nil)

		req := authedRequest("GET", "/api/expenses", nil, userID)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())

		mockExpenses.AssertExpectations(t)
	})
}

func TestExpenseHandler_Get(t *testing.T) {
	t.Run("someone else's expense reads as not found", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		expense := &models.Expense{
			ID:     primitive.NewObjectID(),
			UserID: primitive.NewObjectID().Hex(),
			Amount: 45,
		}
		mockExpenses.On("FindExpenseByID", mock.Anything, expense.ID.Hex()).Return(expense, nil)

		req := authedRequest("GET", "/api/expenses/"+expense.ID.Hex(), nil, primitive.NewObjectID().Hex())
		req.SetPathValue("id", expense.ID.Hex())
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExpenseHandler_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		mockExpenses := new(MockExpenseCollection)
		mockVehicles := new(MockVehicleCollection)
		handler := NewExpenseHandler(db.ExpenseCollection(mockExpenses), db.VehicleCollection(mockVehicles))

		userID := primitive.NewObjectID().Hex()
		expense := &models.Expense{
			ID:     primitive.NewObjectID(),
			UserID: userID,
			Amount: 45,
		}
		mockExpenses.On("FindExpenseByID", mock.Anything, expense.ID.Hex()).Return(expense, nil)
		mockExpenses.On("DeleteExpense", mock.Anything, expense.ID.Hex()).Return(nil)

		req := authedRequest("DELETE", "/api/expenses/"+expense.ID.Hex(), nil, userID)
		req.SetPathValue("id", expense.ID.Hex())
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockExpenses.AssertExpectations(t)
	})
}
