package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect dials MongoDB using MONGODB_URI (localhost fallback) and
// verifies the connection with a ping. The client is constructed here
// and handed to the caller; nothing in this package holds on to it.
func Connect(ctx context.Context) (*mongo.Client, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
		log.Println("MONGODB_URI not set, using default:", uri)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	log.Println("Connected to MongoDB")
	return client, nil
}

// OpenCollection returns a handle on the named collection in the
// configured database (DB_NAME, defaulting to "mealdelivery").
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "mealdelivery"
	}
	return client.Database(dbName).Collection(collectionName)
}
