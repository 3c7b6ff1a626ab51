package listing

import (
	"errors"
	"time"
)

// PromotionState is derived from the stored flags at read time.
type PromotionState string

const (
	PromotionNormal   PromotionState = "NORMAL"
	PromotionPending  PromotionState = "PENDING_APPROVAL"
	PromotionFeatured PromotionState = "FEATURED"
)

var (
	ErrPromotionNotAllowed = errors.New("listing can only be promoted from the normal state")
	ErrNotPending          = errors.New("listing is not awaiting promotion approval")
)

// IsActivelyFeatured requires both the flag and a featured_until strictly
// in the future. A stale true flag with an elapsed timestamp is not featured.
func IsActivelyFeatured(l *Listing, now time.Time) bool {
	return l.IsFeatured && l.FeaturedUntil != nil && l.FeaturedUntil.After(now)
}

func PromotionStateAt(l *Listing, now time.Time) PromotionState {
	switch {
	case l.IsPending:
		return PromotionPending
	case IsActivelyFeatured(l, now):
		return PromotionFeatured
	default:
		return PromotionNormal
	}
}

func CanRequestPromotion(l *Listing, now time.Time) bool {
	return PromotionStateAt(l, now) == PromotionNormal
}

// Promotion holds the three stored columns a transition writes.
type Promotion struct {
	IsFeatured    bool
	IsPending     bool
	FeaturedUntil *time.Time
}

// RequestPromotion moves NORMAL -> PENDING_APPROVAL. A stale featured flag
// is cleared so the two flags are never both set.
func RequestPromotion(l *Listing, now time.Time) (Promotion, error) {
	if !CanRequestPromotion(l, now) {
		return Promotion{}, ErrPromotionNotAllowed
	}
	return Promotion{IsFeatured: false, IsPending: true, FeaturedUntil: nil}, nil
}

// ApprovePromotion moves PENDING_APPROVAL -> FEATURED for FeatureDuration.
func ApprovePromotion(l *Listing, now time.Time) (Promotion, error) {
	if PromotionStateAt(l, now) != PromotionPending {
		return Promotion{}, ErrNotPending
	}
	until := now.Add(FeatureDuration)
	return Promotion{IsFeatured: true, IsPending: false, FeaturedUntil: &until}, nil
}

// Apply copies a transition result onto l.
func (p Promotion) Apply(l *Listing) {
	l.IsFeatured = p.IsFeatured
	l.IsPending = p.IsPending
	l.FeaturedUntil = p.FeaturedUntil
}
