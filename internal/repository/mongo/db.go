package mongo

import (
	"context"
	"fmt"
	"time"

	"fitcoach/coaching-api/internal/config"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
	appName        = "coaching-api"
)

// Connect opens a client for cfg.URI and pings the primary before handing
// back the configured database. A failed ping closes the client again.
func Connect(cfg config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = Disconnect(client)
		return nil, nil, fmt.Errorf("ping %s: %w", cfg.Name, err)
	}

	return client, client.Database(cfg.Name), nil
}

// Disconnect closes the client, waiting at most connectTimeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection the service uses.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureAccountIndexes(ctx, db.Collection(accountCollectionName))
	EnsureUserIndexes(ctx, db.Collection(userCollectionName))
	EnsureTrainerIndexes(ctx, db.Collection(trainerCollectionName))
	EnsureTrainerProfileIndexes(ctx, db.Collection(trainerProfileCollectionName))
	EnsureTrainingPlanIndexes(ctx, db.Collection(trainingPlanCollectionName))
	EnsureNutritionPlanIndexes(ctx, db.Collection(nutritionPlanCollectionName))
	EnsureProgressIndexes(ctx, db.Collection(progressCollectionName))
	log.Info("index creation process completed")
}
