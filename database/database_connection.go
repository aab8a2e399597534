package database

import (
	"context"
	"log"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	dbClient *mongo.Client
	dbOnce   sync.Once
)

func Connect() *mongo.Client {
	dbOnce.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		uri := os.Getenv("MONGODB_URI")
		opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
		client, err := mongo.Connect(opts)
		if err != nil {
			log.Fatal("mongo connect: ", err)
		}
		if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
			log.Fatal("mongo ping: ", err)
		}
		dbClient = client
	})
	return dbClient
}

func OpenCollection(collectionName string) *mongo.Collection {
	client := Connect()
	databaseName := os.Getenv("DATABASE_NAME")
	return client.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email
// index is load-bearing: it is what serializes concurrent signups with the
// same address (the application-level existence check is only the friendly
// fast path).
func EnsureIndexes(ctx context.Context) error {
	_, err := OpenCollection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	for col, field := range map[string]string{
		"user_roles":            "userId",
		"sessions":              "userId",
		"password_reset_tokens": "token",
		"tickets":               "ticket_id",
	} {
		_, err := OpenCollection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
