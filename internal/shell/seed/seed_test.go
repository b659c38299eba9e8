package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// =============================================================================
// Index Declaration Tests
// =============================================================================

func firstKey(t *testing.T, keys interface{}) bson.E {
	t.Helper()
	d, ok := keys.(bson.D)
	require.True(t, ok, "index keys should be a bson.D")
	require.NotEmpty(t, d)
	return d[0]
}

func TestCollectionIndexes_UsersHaveUniqueUserID(t *testing.T) {
	indexes := CollectionIndexes()[CollectionUsers]
	require.Len(t, indexes, 1)

	key := firstKey(t, indexes[0].Keys)
	assert.Equal(t, "user_id", key.Key)
	require.NotNil(t, indexes[0].Options)
	require.NotNil(t, indexes[0].Options.Unique)
	assert.True(t, *indexes[0].Options.Unique)
}

func TestCollectionIndexes_AccountsByUserAndPhone(t *testing.T) {
	indexes := CollectionIndexes()[CollectionAccounts]
	require.Len(t, indexes, 2)

	var fields []string
	for _, idx := range indexes {
		fields = append(fields, firstKey(t, idx.Keys).Key)
	}
	assert.ElementsMatch(t, []string{"user_id", "phone_number"}, fields)
}

func TestCollectionIndexes_SessionsByAccountAndCreation(t *testing.T) {
	indexes := CollectionIndexes()[CollectionSessions]
	require.Len(t, indexes, 2)

	var fields []string
	for _, idx := range indexes {
		fields = append(fields, firstKey(t, idx.Keys).Key)
	}
	assert.ElementsMatch(t, []string{"account_id", "created_at"}, fields)
}

func TestCollectionIndexes_EventsByTimestampUserAndType(t *testing.T) {
	indexes := CollectionIndexes()[CollectionEvents]
	require.Len(t, indexes, 3)

	var fields []string
	for _, idx := range indexes {
		fields = append(fields, firstKey(t, idx.Keys).Key)
	}
	assert.ElementsMatch(t, []string{"timestamp", "user_id", "event_type"}, fields)
}

func TestCollectionIndexes_SettingsHasNoIndexes(t *testing.T) {
	_, ok := CollectionIndexes()[CollectionSettings]
	assert.False(t, ok, "settings is a singleton document, not a queried collection")
}

// =============================================================================
// Settings Seed Tests
// =============================================================================

func TestSettingsUpdate_OnlySetsOnInsert(t *testing.T) {
	update := SettingsUpdate(42)

	require.Contains(t, update, "$setOnInsert")
	assert.Len(t, update, 1, "re-running the seed must not overwrite operator changes")

	fields := update["$setOnInsert"].(bson.M)
	assert.Equal(t, false, fields["monitoring_enabled"])
	assert.Equal(t, int64(42), fields["owner_id"])
}

func TestSettingsFilter_SelectsSingleton(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "global"}, SettingsFilter())
}
