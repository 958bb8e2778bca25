package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestDownloadClientConfigStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	cfg := store.DownloadClientConfig{
		Name:            "Transmission",
		Kind:            "transmission",
		Host:            "transmission",
		Port:            9091,
		Category:        "movies",
		Protocol:        "torrent",
		Enabled:         true,
		KeepSourceFiles: true,
	}
	id, err := s.CreateDownloadClientConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	configs, err := s.ListDownloadClientConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Transmission", configs[0].Name)
	assert.True(t, configs[0].KeepSourceFiles)

	updated := configs[0]
	updated.Host = "transmission.lan"
	require.NoError(t, s.UpdateDownloadClientConfig(ctx, updated))

	configs, err = s.ListDownloadClientConfigs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "transmission.lan", configs[0].Host)

	require.NoError(t, s.DeleteDownloadClientConfig(ctx, id))
	configs, err = s.ListDownloadClientConfigs(ctx)
	require.NoError(t, err)
	assert.Empty(t, configs)
}
