package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store/sqlite/schema/gen/model"
)

func testQualityDefinition(name string) model.QualityDefinition {
	return model.QualityDefinition{
		Name:          name,
		Weight:        10,
		MinSize:       1000,
		MaxSize:       5000,
		PreferredSize: 3000,
		Resolution:    "720p",
		Source:        "webdl",
	}
}

func testQualityProfile(t *testing.T, ctx context.Context, s *SQLite) int64 {
	t.Helper()
	id, err := s.CreateQualityProfile(ctx, model.QualityProfile{
		Name:           "HD",
		MediaType:      "movie",
		CutoffQuality:  "1080p",
		UpgradeAllowed: true,
	})
	require.NoError(t, err)
	return id
}

func TestQualityDefinitionStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	id, err := s.CreateQualityDefinition(ctx, testQualityDefinition("720p WEB-DL"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	defs, err := s.ListQualityDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "720p WEB-DL", defs[0].Name)

	updated := *defs[0]
	updated.Weight = 20
	require.NoError(t, s.UpdateQualityDefinition(ctx, updated))

	defs, err = s.ListQualityDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(20), defs[0].Weight)

	require.NoError(t, s.DeleteQualityDefinition(ctx, id))
	defs, err = s.ListQualityDefinitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestQualityProfileStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	profile := model.QualityProfile{
		Name:                 "HD",
		MediaType:            "movie",
		CutoffQuality:        "1080p",
		UpgradeAllowed:       true,
		MinCustomFormatScore: 0,
		PropersPreference:    "prefer",
	}
	id, err := s.CreateQualityProfile(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetQualityProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "HD", got.Name)
	assert.True(t, got.UpgradeAllowed)

	profiles, err := s.ListQualityProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	updated := *got
	updated.UpgradeAllowed = false
	require.NoError(t, s.UpdateQualityProfile(ctx, updated))

	got, err = s.GetQualityProfile(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.UpgradeAllowed)

	item := model.QualityProfileItem{
		QualityProfileID: int32(id),
		Quality:          "1080p",
		Allowed:          true,
		SortOrder:        1,
	}
	itemID, err := s.CreateQualityProfileItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, int64(1), itemID)

	items, err := s.ListQualityProfileItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1080p", items[0].Quality)

	require.NoError(t, s.DeleteQualityProfileItemsForProfile(ctx, id))
	items, err = s.ListQualityProfileItems(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.DeleteQualityProfile(ctx, id))
	profiles, err = s.ListQualityProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
