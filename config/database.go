package config

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client              *mongo.Client
	AdminCollection     *mongo.Collection
	SessionCollection   *mongo.Collection
	AnalyticsCollection *mongo.Collection

	connectOnce sync.Once
)

// ConnectDatabase establishes the shared pooled client. Guarded by a
// sync.Once so concurrent cold-start requests cannot race a second
// connection into existence. MONGO_URI is required; a deployment without it
// is misconfigured and must not come up.
func ConnectDatabase() {
	connectOnce.Do(connect)
}

// GetDatabase returns the shared client, connecting lazily on first use.
func GetDatabase() *mongo.Client {
	ConnectDatabase()
	return Client
}

func connect() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI is not set")
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "linktree"
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(5).
		SetConnectTimeout(10 * time.Second).
		SetMaxConnIdleTime(60 * time.Second)

	client, err := mongo.NewClient(opts)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	Client = client
	AdminCollection = Client.Database(dbName).Collection("admin")
	SessionCollection = Client.Database(dbName).Collection("sessions")
	AnalyticsCollection = Client.Database(dbName).Collection("analytics")

	ensureIndexes(ctx)
	log.Println("Connected to MongoDB")
}

func ensureIndexes(ctx context.Context) {
	analyticsIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}
	if _, err := AnalyticsCollection.Indexes().CreateMany(ctx, analyticsIndexes); err != nil {
		log.Printf("Error creating analytics indexes: %v", err)
	}

	sessionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}},
	}
	if _, err := SessionCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		log.Printf("Error creating session indexes: %v", err)
	}
}
