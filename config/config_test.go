package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/config"
)

func TestNew_UnmarshalsFromViper(t *testing.T) {
	v := viper.New()
	v.Set("tmdb.apiKey", "secret")
	v.Set("server.port", 8080)
	v.Set("scheduler.rssSyncMinutes", 5)

	c, err := config.New(v)
	require.NoError(t, err)

	assert.Equal(t, "secret", c.TMDB.APIKey)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 5, c.Scheduler.RSSSyncMinutes)
}

func TestScheduler_DefaultsFillsUnsetFields(t *testing.T) {
	s := config.Scheduler{RSSSyncMinutes: 5}
	d := s.Defaults()

	assert.Equal(t, 5, d.RSSSyncMinutes)
	assert.Equal(t, 5, d.DownloadSyncSeconds)
	assert.Equal(t, 60, d.ImportListSyncMinutes)
	assert.Equal(t, 60, d.LibraryRefreshMinutes)
	assert.Equal(t, 24, d.MetadataRefreshHours)
	assert.Equal(t, 60, d.MissingSearchMinutes)
	assert.Equal(t, 360, d.CutoffSearchMinutes)
	assert.Equal(t, 24, d.ActivityCleanupHours)
	assert.Equal(t, 1, d.DatabaseBackupMinutes)
}

func TestScheduler_DefaultsLeavesSetFieldsAlone(t *testing.T) {
	s := config.Scheduler{DownloadSyncSeconds: 30, DatabaseBackupMinutes: 10}
	d := s.Defaults()

	assert.Equal(t, 30, d.DownloadSyncSeconds)
	assert.Equal(t, 10, d.DatabaseBackupMinutes)
}
