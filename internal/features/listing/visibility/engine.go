// Package visibility decides which listings a viewer sees and in what
// order. It is a pure function of its inputs: callers refetch the full
// listing set after every mutation and run Compute again.
package visibility

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Mustafaygt66/EMKO/internal/domain/favorite"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

type View string

const (
	ViewAll          View = "all"
	ViewFavorites    View = "favorites"
	ViewMyJobs       View = "my-jobs"
	ViewAdminPending View = "admin-pending"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceHigh SortKey = "price_high"
	SortPriceLow  SortKey = "price_low"
)

type PromotionFilter string

const (
	PromotionAll      PromotionFilter = "all"
	PromotionFeatured PromotionFilter = "featured"
	PromotionNormal   PromotionFilter = "normal"
)

// Viewer is the caller the computation runs for. An empty UserID is an
// anonymous visitor.
type Viewer struct {
	UserID    string
	Favorites favorite.Set
}

type Query struct {
	View      View
	Search    string
	Sort      SortKey
	Promotion PromotionFilter
}

type Result struct {
	Visible []listing.Listing `json:"visible"`
	Trend   []listing.Listing `json:"trend"`
}

// ParseQuery maps raw request values onto a Query; unknown values fall
// back to the defaults (all, newest, all).
func ParseQuery(view, search, sortKey, promotion string) Query {
	q := Query{View: ViewAll, Sort: SortNewest, Promotion: PromotionAll, Search: strings.TrimSpace(search)}
	switch v := View(view); v {
	case ViewFavorites, ViewMyJobs, ViewAdminPending:
		q.View = v
	}
	switch s := SortKey(sortKey); s {
	case SortPriceHigh, SortPriceLow:
		q.Sort = s
	}
	switch p := PromotionFilter(promotion); p {
	case PromotionFeatured, PromotionNormal:
		q.Promotion = p
	}
	return q
}

// Compute returns the visible sequence for q together with the trend
// carousel, which ignores view, search and sort.
func Compute(all []listing.Listing, viewer Viewer, q Query, now time.Time) Result {
	return Result{
		Visible: Visible(all, viewer, q, now),
		Trend:   Trend(all, now),
	}
}

func Visible(all []listing.Listing, viewer Viewer, q Query, now time.Time) []listing.Listing {
	needle := fold(q.Search)

	out := make([]listing.Listing, 0, len(all))
	for i := range all {
		l := &all[i]
		if !inView(l, viewer, q, now) {
			continue
		}
		if needle != "" && !matches(l, needle) {
			continue
		}
		out = append(out, *l)
	}

	switch q.Sort {
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() > out[j].Price() })
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() < out[j].Price() })
	default:
		sortNewest(out)
	}
	return out
}

// Trend is every actively featured listing, newest first.
func Trend(all []listing.Listing, now time.Time) []listing.Listing {
	out := make([]listing.Listing, 0)
	for i := range all {
		if listing.IsActivelyFeatured(&all[i], now) {
			out = append(out, all[i])
		}
	}
	sortNewest(out)
	return out
}

func inView(l *listing.Listing, viewer Viewer, q Query, now time.Time) bool {
	switch q.View {
	case ViewAdminPending:
		return l.IsPending
	case ViewFavorites:
		return viewer.Favorites.Has(l.ID)
	case ViewMyJobs:
		return l.OwnedBy(viewer.UserID)
	}

	if l.IsPending {
		return false
	}
	switch q.Promotion {
	case PromotionFeatured:
		return listing.IsActivelyFeatured(l, now)
	case PromotionNormal:
		return !listing.IsActivelyFeatured(l, now)
	default:
		return true
	}
}

func matches(l *listing.Listing, needle string) bool {
	return strings.Contains(fold(l.Title), needle) || strings.Contains(fold(l.Description), needle)
}

// fold lowercases with Turkish rules (İ->i, I->ı) and then treats dotless ı
// as i so that "ISTANBUL", "istanbul" and "İstanbul" all match each other.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(cases.Lower(language.Turkish).String(s), "ı", "i")
}

func sortNewest(ls []listing.Listing) {
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].CreatedAt.After(ls[j].CreatedAt) })
}
