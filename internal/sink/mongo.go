package sink

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"traffic-sim-registration-api-server/internal/registration"
)

const registrationsCollection = "registrations"

// MongoSink inserts each completed registration into the registrations
// collection. Attached only when Mongo is configured.
type MongoSink struct {
	DB *mongo.Database
}

func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{DB: db}
}

func (s *MongoSink) Name() string { return "mongo" }

func (s *MongoSink) Emit(ctx context.Context, rec registration.Record) error {
	if _, err := s.DB.Collection(registrationsCollection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert registration %s: %w", rec.RecordID, err)
	}
	return nil
}
