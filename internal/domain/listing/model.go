package listing

import (
	"strconv"
	"time"
)

// Status is display-only; no operation transitions it.
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
)

// FeatureDuration is how long an approved promotion stays active.
const FeatureDuration = 7 * 24 * time.Hour

// Listing is a posted classified ad ("job").
type Listing struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	// Category is free text; nil renders as "DİĞER" (other).
	Category *string `json:"category" db:"category"`
	// PriceAmount is nil for barter/negotiable listings.
	PriceAmount   *float64   `json:"price_amount" db:"price_amount"`
	PhoneNumber   string     `json:"phone_number" db:"phone_number"`
	Status        Status     `json:"status" db:"status"`
	IsFeatured    bool       `json:"is_featured" db:"is_featured"`
	FeaturedUntil *time.Time `json:"featured_until" db:"featured_until"`
	IsPending     bool       `json:"is_pending" db:"is_pending"`
	UserID        string     `json:"user_id" db:"user_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Price returns the amount used for ordering; a missing price counts as 0.
func (l *Listing) Price() float64 {
	if l.PriceAmount == nil {
		return 0
	}
	return *l.PriceAmount
}

// ShortID is the id prefix quoted in chat messages.
func (l *Listing) ShortID() string {
	const n = 8
	if len(l.ID) <= n {
		return l.ID
	}
	return l.ID[:n]
}

// DisplayPrice renders the price badge: "<amount>₺", or "TAKAS" (barter)
// when no amount was given.
func (l *Listing) DisplayPrice() string {
	if l.PriceAmount == nil || *l.PriceAmount == 0 {
		return "TAKAS"
	}
	return strconv.FormatFloat(*l.PriceAmount, 'f', -1, 64) + "₺"
}

func (l *Listing) DisplayCategory() string {
	if l.Category == nil || *l.Category == "" {
		return "DİĞER"
	}
	return *l.Category
}

func (l *Listing) DisplayStatus() string {
	if l.Status == StatusOpen {
		return "İLAN AKTİF"
	}
	return "TAMAMLANDI"
}

func (l *Listing) OwnedBy(userID string) bool {
	return userID != "" && l.UserID == userID
}
