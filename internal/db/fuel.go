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

// FuelCollection defines the interface for fuel entry database operations.
type FuelCollection interface {
	InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error
	FindFuelEntries(ctx context.Context, userID, vehicleID string) ([]models.FuelEntry, error)
	FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error)
	UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error
	DeleteFuelEntry(ctx context.Context, id string) error
}

// MongoFuelCollection implements FuelCollection for MongoDB.
type MongoFuelCollection struct {
	Collection *mongo.Collection
}

// InsertFuelEntry inserts a fuel entry into the collection.
func (c *MongoFuelCollection) InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error {
	_, err := c.Collection.InsertOne(ctx, entry)
	return err
}

// FindFuelEntries returns a user's fill-ups newest first, optionally
// narrowed to a single vehicle.
func (c *MongoFuelCollection) FindFuelEntries(ctx context.Context, userID, vehicleID string) ([]models.FuelEntry, error) {
	filter := bson.M{"user_id": userID}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	entries := []models.FuelEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindFuelEntryByID finds a fuel entry by its ID.
func (c *MongoFuelCollection) FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var entry models.FuelEntry
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// UpdateFuelEntry replaces a fuel entry by its ID.
func (c *MongoFuelCollection) UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	entry.ID = objectID
	entry.UpdatedAt = time.Now()
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, entry)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFuelEntry deletes a fuel entry by its ID.
func (c *MongoFuelCollection) DeleteFuelEntry(ctx context.Context, id string) error {
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
