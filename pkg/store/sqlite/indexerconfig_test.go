package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestIndexerConfigStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	cfg := store.IndexerConfig{
		Name:       "Prowlarr",
		URI:        "http://prowlarr:9696",
		APIKey:     "secret",
		Priority:   25,
		Categories: []int{2000, 5000},
		Enabled:    true,
		RSSEnabled: true,
	}
	id, err := s.CreateIndexerConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	configs, err := s.ListIndexerConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, []int{2000, 5000}, configs[0].Categories)

	updated := configs[0]
	updated.Priority = 50
	updated.Categories = []int{2000}
	require.NoError(t, s.UpdateIndexerConfig(ctx, updated))

	configs, err = s.ListIndexerConfigs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(50), configs[0].Priority)
	assert.Equal(t, []int{2000}, configs[0].Categories)

	require.NoError(t, s.DeleteIndexerConfig(ctx, id))
	configs, err = s.ListIndexerConfigs(ctx)
	require.NoError(t, err)
	assert.Empty(t, configs)
}
