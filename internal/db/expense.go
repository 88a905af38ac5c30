package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okaradag/garagelog/internal/models"
)

// ExpenseCollection defines the interface for expense database operations.
type ExpenseCollection interface {
	InsertExpense(ctx context.Context, expense models.Expense) error
	FindExpenses(ctx context.Context, userID, vehicleID string) ([]models.Expense, error)
	FindExpenseByID(ctx context.Context, id string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, expense models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// MongoExpenseCollection implements ExpenseCollection for MongoDB.
type MongoExpenseCollection struct {
	Collection *mongo.Collection
}

// InsertExpense inserts an expense record into the collection.
func (c *MongoExpenseCollection) InsertExpense(ctx context.Context, expense models.Expense) error {
	_, err := c.Collection.InsertOne(ctx, expense)
	return err
}

// FindExpenses returns a user's expenses newest first, optionally narrowed
// to a single vehicle.
func (c *MongoExpenseCollection) FindExpenses(ctx context.Context, userID, vehicleID string) ([]models.Expense, error) {
	filter := bson.M{"user_id": userID}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindExpenseByID finds an expense by its ID.
func (c *MongoExpenseCollection) FindExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var expense models.Expense
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&expense)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense replaces an expense by its ID.
func (c *MongoExpenseCollection) UpdateExpense(ctx context.Context, id string, expense models.Expense) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	expense.ID = objectID
	expense.UpdatedAt = time.Now()
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, expense)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpense deletes an expense by its ID.
func (c *MongoExpenseCollection) DeleteExpense(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
