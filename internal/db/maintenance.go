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

// MaintenanceCollection defines the interface for maintenance database
// operations.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, maintenance models.Maintenance) error
	FindMaintenance(ctx context.Context, userID, vehicleID string) ([]models.Maintenance, error)
	FindMaintenanceByID(ctx context.Context, id string) (*models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id string, maintenance models.Maintenance) error
	DeleteMaintenance(ctx context.Context, id string) error
}

// MongoMaintenanceCollection implements MaintenanceCollection for MongoDB.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenance inserts a maintenance record into the collection.
func (c *MongoMaintenanceCollection) InsertMaintenance(ctx context.Context, maintenance models.Maintenance) error {
	_, err := c.Collection.InsertOne(ctx, maintenance)
	return err
}

// FindMaintenance returns a user's maintenance records newest first,
// optionally narrowed to a single vehicle.
func (c *MongoMaintenanceCollection) FindMaintenance(ctx context.Context, userID, vehicleID string) ([]models.Maintenance, error) {
	filter := bson.M{"user_id": userID}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	records := []models.Maintenance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindMaintenanceByID finds a maintenance record by its ID.
func (c *MongoMaintenanceCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.Maintenance, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var maintenance models.Maintenance
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&maintenance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &maintenance, nil
}

// UpdateMaintenance replaces a maintenance record by its ID.
func (c *MongoMaintenanceCollection) UpdateMaintenance(ctx context.Context, id string, maintenance models.Maintenance) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	maintenance.ID = objectID
	maintenance.UpdatedAt = time.Now()
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, maintenance)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMaintenance deletes a maintenance record by its ID.
func (c *MongoMaintenanceCollection) DeleteMaintenance(ctx context.Context, id string) error {
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
