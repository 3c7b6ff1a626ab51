package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

func TestLinksCarryShortIDAndTitle(t *testing.T) {
	b := NewBuilder("905000000000", "https://wa.me/")
	l := &listing.Listing{ID: "3f2a9c1e-0000-4000-8000-000000000000", Title: "Çim kesimi & bahçe"}

	for name, link := range map[string]string{
		"contact": b.ListingContact(l),
		"payment": b.PromotionPayment(l),
	} {
		t.Run(name, func(t *testing.T) {
			require.True(t, strings.HasPrefix(link, "https://wa.me/905000000000?text="), link)

			u, err := url.Parse(link)
			require.NoError(t, err)
			text := u.Query().Get("text")
			assert.Contains(t, text, "#3f2a9c1e")
			assert.Contains(t, text, "Çim kesimi & bahçe")
			assert.NotContains(t, u.RawQuery, " ")
		})
	}
}
