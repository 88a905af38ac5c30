package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okaradag/garagelog/internal/models"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) FindVehiclesByUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) AdvanceVehicleMileage(ctx context.Context, id string, mileage int64) (bool, error) {
	args := m.Called(ctx, id, mileage)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockExpenseCollection is a mock implementation of db.ExpenseCollection
type MockExpenseCollection struct {
	mock.Mock
}

func (m *MockExpenseCollection) InsertExpense(ctx context.Context, expense models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseCollection) FindExpenses(ctx context.Context, userID, vehicleID string) ([]models.Expense, error) {
	args := m.Called(ctx, userID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseCollection) FindExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseCollection) UpdateExpense(ctx context.Context, id string, expense models.Expense) error {
	args := m.Called(ctx, id, expense)
	return args.Error(0)
}

func (m *MockExpenseCollection) DeleteExpense(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMaintenanceCollection is a mock implementation of db.MaintenanceCollection
type MockMaintenanceCollection struct {
	mock.Mock
}

func (m *MockMaintenanceCollection) InsertMaintenance(ctx context.Context, maintenance models.Maintenance) error {
	args := m.Called(ctx, maintenance)
	return args.Error(0)
}

func (m *MockMaintenanceCollection) FindMaintenance(ctx context.Context, userID, vehicleID string) ([]models.Maintenance, error) {
	args := m.Called(ctx, userID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Maintenance), args.Error(1)
}

func (m *MockMaintenanceCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Maintenance), args.Error(1)
}

func (m *MockMaintenanceCollection) UpdateMaintenance(ctx context.Context, id string, maintenance models.Maintenance) error {
	args := m.Called(ctx, id, maintenance)
	return args.Error(0)
}

func (m *MockMaintenanceCollection) DeleteMaintenance(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFuelCollection is a mock implementation of db.FuelCollection
type MockFuelCollection struct {
	mock.Mock
}

func (m *MockFuelCollection) InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFuelCollection) FindFuelEntries(ctx context.Context, userID, vehicleID string) ([]models.FuelEntry, error) {
	args := m.Called(ctx, userID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelEntry), args.Error(1)
}

func (m *MockFuelCollection) FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelEntry), args.Error(1)
}

func (m *MockFuelCollection) UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}

func (m *MockFuelCollection) DeleteFuelEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
