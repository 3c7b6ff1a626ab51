package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

// Malformed ids never reach the database, so a nil handle is enough here.
func TestMalformedIDsAreNotFound(t *testing.T) {
	repo := NewPostgresRepository(nil)
	ctx := context.Background()

	for _, id := range []string{"foo", "", "1 OR 1=1", "8c4f2b1e-4a61-4e8b-9a51-1d2f3c4b5a6"} {
		t.Run(id, func(t *testing.T) {
			_, err := repo.GetByID(ctx, id)
			assert.ErrorIs(t, err, listing.ErrNotFound)

			assert.ErrorIs(t, repo.Delete(ctx, id), listing.ErrNotFound)
			assert.ErrorIs(t, repo.UpdatePromotion(ctx, id, true, listing.Promotion{}), listing.ErrNotFound)

			owned, err := repo.ListByUser(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, owned)
		})
	}
}
