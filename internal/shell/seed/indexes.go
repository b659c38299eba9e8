// Package seed performs the one-time database bootstrap the bot stack relies
// on: indexed collections plus a seeded settings document. Idempotent on an
// empty or already-seeded database.
package seed

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names owned by the bot.
const (
	CollectionUsers    = "users"
	CollectionAccounts = "accounts"
	CollectionSessions = "sessions"
	CollectionEvents   = "events"
	CollectionSettings = "settings"
)

// =============================================================================
// Index Declarations (pure)
// =============================================================================

// CollectionIndexes declares every index the bot's queries depend on, keyed
// by collection name. Creating an index that already exists is a no-op for
// the server, which keeps the bootstrap idempotent.
func CollectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionAccounts: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "phone_number", Value: 1}}},
		},
		CollectionSessions: {
			{Keys: bson.D{{Key: "account_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollectionEvents: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "event_type", Value: 1}}},
		},
	}
}

// SettingsUpdate builds the upsert for the singleton settings document. Only
// $setOnInsert fields are used so re-running the seed never clobbers values
// an operator changed later.
func SettingsUpdate(ownerID int64) bson.M {
	return bson.M{
		"$setOnInsert": bson.M{
			"monitoring_enabled": false,
			"owner_id":           ownerID,
		},
	}
}

// SettingsFilter selects the singleton settings document.
func SettingsFilter() bson.M {
	return bson.M{"_id": "global"}
}
