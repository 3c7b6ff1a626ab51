// Package contact builds chat deep links that hand a conversation off to
// the operator's messaging account with a pre-filled message.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

type Builder struct {
	OperatorPhone string
	BaseURL       string
}

func NewBuilder(operatorPhone, baseURL string) *Builder {
	return &Builder{
		OperatorPhone: operatorPhone,
		BaseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// ListingContact is the link a buyer follows to ask about a listing.
func (b *Builder) ListingContact(l *listing.Listing) string {
	msg := fmt.Sprintf("Merhaba, EMKO'daki #%s numaralı \"%s\" ilanı hakkında bilgi almak istiyorum.", l.ShortID(), l.Title)
	return b.link(msg)
}

// PromotionPayment is the link an owner follows after requesting a
// promotion; payment is confirmed manually by the operator.
func (b *Builder) PromotionPayment(l *listing.Listing) string {
	msg := fmt.Sprintf("Merhaba, #%s numaralı \"%s\" ilanımı öne çıkarmak için ödeme yapmak istiyorum.", l.ShortID(), l.Title)
	return b.link(msg)
}

func (b *Builder) link(msg string) string {
	return b.BaseURL + "/" + url.PathEscape(b.OperatorPhone) + "?text=" + url.QueryEscape(msg)
}
