package models

import (
	"time"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

func ToListingResponse(l listing.Listing, now time.Time) ListingResponse {
	return ListingResponse{
		Listing:         l,
		ShortID:         l.ShortID(),
		PromotionState:  string(listing.PromotionStateAt(&l, now)),
		DisplayPrice:    l.DisplayPrice(),
		DisplayStatus:   l.DisplayStatus(),
		DisplayCategory: l.DisplayCategory(),
	}
}

func ToListingResponses(ls []listing.Listing, now time.Time) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, ToListingResponse(l, now))
	}
	return out
}
