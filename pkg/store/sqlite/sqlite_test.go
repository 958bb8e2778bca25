package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initSQLite(t *testing.T, ctx context.Context) *SQLite {
	t.Helper()

	s, err := New(":memory:")
	require.NoError(t, err)

	err = s.Init(ctx)
	require.NoError(t, err)

	return s
}

func TestInit(t *testing.T) {
	s := initSQLite(t, context.Background())
	assert.NotNil(t, s)
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	err := s.WithTx(ctx, func(txCtx context.Context) error {
		_, err := s.CreateQualityDefinition(txCtx, testQualityDefinition("720p"))
		return err
	})
	require.NoError(t, err)

	defs, err := s.ListQualityDefinitions(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := initSQLite(t, ctx)

	err := s.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.CreateQualityDefinition(txCtx, testQualityDefinition("720p")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	defs, err := s.ListQualityDefinitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, defs)
}
