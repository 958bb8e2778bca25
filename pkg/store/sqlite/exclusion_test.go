package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/pkg/store"
)

func TestExclusionStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	excluded, err := s.IsExcluded(ctx, 1234, store.MediaMovie)
	require.NoError(t, err)
	assert.False(t, excluded)

	require.NoError(t, s.AddExclusion(ctx, 1234, store.MediaMovie))

	excluded, err = s.IsExcluded(ctx, 1234, store.MediaMovie)
	require.NoError(t, err)
	assert.True(t, excluded)

	// Adding the same exclusion twice is a no-op, not an error.
	require.NoError(t, s.AddExclusion(ctx, 1234, store.MediaMovie))

	// Exclusion is scoped per media type.
	excluded, err = s.IsExcluded(ctx, 1234, store.MediaSeries)
	require.NoError(t, err)
	assert.False(t, excluded)

	require.NoError(t, s.RemoveExclusion(ctx, 1234, store.MediaMovie))
	excluded, err = s.IsExcluded(ctx, 1234, store.MediaMovie)
	require.NoError(t, err)
	assert.False(t, excluded)
}

func TestBlacklistStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	movieID, err := s.CreateMovie(ctx, testMovie("Arrival", 1234))
	require.NoError(t, err)
	blacklisted, err := s.IsBlacklisted(ctx, "Arrival.2016.1080p.WEB-DL", &movieID, nil)
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, s.AddToBlacklist(ctx, "Arrival.2016.1080p.WEB-DL", store.MediaMovie, &movieID, nil))

	blacklisted, err = s.IsBlacklisted(ctx, "Arrival.2016.1080p.WEB-DL", &movieID, nil)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	otherMovie := int64(2)
	blacklisted, err = s.IsBlacklisted(ctx, "Arrival.2016.1080p.WEB-DL", &otherMovie, nil)
	require.NoError(t, err)
	assert.False(t, blacklisted)

	_, err = s.IsBlacklisted(ctx, "Arrival.2016.1080p.WEB-DL", nil, nil)
	assert.Error(t, err)
}
