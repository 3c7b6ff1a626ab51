package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

const validID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

func TestMalformedIDsSkipTheDatabase(t *testing.T) {
	repo := NewPostgresRepository(nil)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Add(ctx, validID, "foo"), listing.ErrNotFound)
	assert.ErrorIs(t, repo.Add(ctx, "foo", validID), listing.ErrNotFound)

	assert.NoError(t, repo.Remove(ctx, validID, "foo"))
	assert.NoError(t, repo.DeleteByJob(ctx, "foo"))
	assert.NoError(t, repo.DeleteByUser(ctx, "foo"))

	ids, err := repo.JobIDs(ctx, "foo")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
