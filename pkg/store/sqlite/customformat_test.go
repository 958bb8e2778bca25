package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatStorage(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	profile := testQualityProfile(t, ctx, s)

	id, err := s.CreateCustomFormat(ctx, "French", `"FRENCH" in Title`, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	formats, err := s.ListCustomFormats(ctx)
	require.NoError(t, err)
	require.Len(t, formats, 1)
	assert.Equal(t, "French", formats[0].Name)

	require.NoError(t, s.SetCustomFormatProfileScore(ctx, id, profile, -1000))

	scores, err := s.ListCustomFormatProfileScores(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, int32(-1000), scores[id])

	// Setting again overwrites rather than duplicating.
	require.NoError(t, s.SetCustomFormatProfileScore(ctx, id, profile, -500))
	scores, err = s.ListCustomFormatProfileScores(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, int32(-500), scores[id])

	require.NoError(t, s.DeleteCustomFormat(ctx, id))
	formats, err = s.ListCustomFormats(ctx)
	require.NoError(t, err)
	assert.Empty(t, formats)
}
