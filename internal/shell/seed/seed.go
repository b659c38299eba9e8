package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// =============================================================================
// Seeder
// =============================================================================

// Seeder bootstraps the bot's database.
type Seeder struct {
	uri      string
	database string
	logger   *slog.Logger
}

// NewSeeder creates a seeder for the given database.
func NewSeeder(uri, database string, logger *slog.Logger) *Seeder {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if database == "" {
		database = "telegram_bot_db"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{uri: uri, database: database, logger: logger}
}

// Run connects, creates every declared index, and seeds the settings
// document. ownerID comes from the operator's environment.
func (s *Seeder) Run(ctx context.Context, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	db := client.Database(s.database)

	for collection, indexes := range CollectionIndexes() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", collection, err)
		}
		s.logger.Info("ensured indexes", "collection", collection, "count", len(indexes))
	}

	opts := options.Update().SetUpsert(true)
	res, err := db.Collection(CollectionSettings).UpdateOne(ctx, SettingsFilter(), SettingsUpdate(ownerID), opts)
	if err != nil {
		return fmt.Errorf("seed settings document: %w", err)
	}
	if res.UpsertedCount > 0 {
		s.logger.Info("seeded settings document", "owner_id", ownerID)
	} else {
		s.logger.Info("settings document already present, left untouched")
	}

	return nil
}
