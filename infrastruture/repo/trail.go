package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/trailgen-api/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TrailRepo handles the persistence of trail models. Cell lists can reach
// the size of the whole grid, so listing queries project them away.
type TrailRepo struct {
	collection *mongo.Collection
}

// NewTrailRepo creates a new TrailRepo with the given MongoDB client, database name, and collection name.
func NewTrailRepo(client *mongo.Client, dbName, collectionName string) *TrailRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &TrailRepo{
		collection: collection,
	}
}

// Save inserts or updates a trail in the repository, replacing the stored
// result fields with the trail's current ones.
func (t *TrailRepo) Save(trail *dmn.Trail) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": trail.ID}
	update := bson.M{
		"$set": bson.M{
			"ownerId":     trail.OwnerID,
			"name":        trail.Name,
			"size":        trail.Size,
			"tortuosity":  trail.Tortuosity,
			"sparsity":    trail.Sparsity,
			"maxSteps":    trail.MaxSteps,
			"status":      trail.Status,
			"steps":       trail.Steps,
			"trapped":     trail.Trapped,
			"cells":       trail.Cells,
			"requestedAt": trail.RequestedAt,
			"finishedAt":  trail.FinishedAt,
			"updatedAt":   time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := t.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a trail by its ID, including its cells.
// Returns an error if the trail is not found or if an unexpected error occurs.
func (t *TrailRepo) ByID(id uuid.UUID) (*dmn.Trail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var trail dmn.Trail
	if err := t.collection.FindOne(ctx, filter).Decode(&trail); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("trail not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &trail, nil
}

// ByOwner retrieves the trails owned by a user, newest request first. The
// cell lists are omitted; ByID fetches a single trail with cells.
func (t *TrailRepo) ByOwner(ownerID uuid.UUID) ([]*dmn.Trail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"ownerId": ownerID}
	opts := options.Find().
		SetProjection(bson.M{"cells": 0}).
		SetSort(bson.D{{Key: "requestedAt", Value: -1}})

	cursor, err := t.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var trails []*dmn.Trail
	for cursor.Next(ctx) {
		var trail dmn.Trail
		if err := cursor.Decode(&trail); err != nil {
			return nil, errors.New("unexpected error: " + err.Error())
		}
		trails = append(trails, &trail)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	return trails, nil
}
