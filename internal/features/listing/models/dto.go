package models

import "github.com/Mustafaygt66/EMKO/internal/domain/listing"

// CreateListingRequest is the body of POST /listings.
type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required" example:"Çim kesimi"`
	Description string   `json:"description" binding:"required" example:"bahçe düzenleme"`
	Category    *string  `json:"category,omitempty" example:"Bahçe"`
	PriceAmount *float64 `json:"price_amount,omitempty" example:"150"`
	PhoneNumber string   `json:"phone_number" binding:"required" example:"0532 111 22 33"`
}

// ListingResponse adds the rendered labels the page shows on a card.
type ListingResponse struct {
	listing.Listing
	ShortID         string `json:"short_id"`
	PromotionState  string `json:"promotion_state"`
	DisplayPrice    string `json:"display_price"`
	DisplayStatus   string `json:"display_status"`
	DisplayCategory string `json:"display_category"`
}

type BrowseResponse struct {
	Visible []ListingResponse `json:"visible"`
	Trend   []ListingResponse `json:"trend"`
}

type TrendResponse struct {
	Trend []ListingResponse `json:"trend"`
}

// PromotionResponse is returned after a promotion request. The owner is
// expected to open PaymentLink to notify the operator.
type PromotionResponse struct {
	Listing     ListingResponse `json:"listing"`
	PaymentLink string          `json:"payment_link"`
}

type ContactResponse struct {
	Link string `json:"link" example:"https://wa.me/905000000000?text=..."`
}
