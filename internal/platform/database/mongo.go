package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"kambaz_api/internal/platform/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoURI = "mongodb://127.0.0.1:27017"

var (
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
)

// ConnectMongo dials DATABASE_CONNECTION_STRING and selects MONGO_DATABASE.
// Embedded documents decode as bson.M so they encode back to JSON objects.
func ConnectMongo() {
	uri := config.AppConfig.DBConnectionString
	if uri == "" {
		uri = defaultMongoURI
	}

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	MongoClient, err = mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("Error opening MongoDB client: %v", err)
	}
	if err = MongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	MongoDB = MongoClient.Database(config.AppConfig.MongoDatabase)

	fmt.Printf("Successfully connected to MongoDB database %q!\n", config.AppConfig.MongoDatabase)
}

func CloseMongo() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Printf("WARN: MongoDB disconnect: %v", err)
		return
	}
	fmt.Println("MongoDB connection closed.")
}
